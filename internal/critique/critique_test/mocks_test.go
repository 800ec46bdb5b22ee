package critique_test

import (
	"context"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

// MockExtractor stands in for the file extractor
type MockExtractor struct {
	OnExtract func(path string) (string, error)
}

func (m *MockExtractor) ExtractText(path string) (string, error) {
	if m.OnExtract != nil {
		return m.OnExtract(path)
	}
	return "The paper studies caching. It is quite fast.", nil
}

// MockChunkAnalyzer stands in for the model-backed per-chunk analyzer
type MockChunkAnalyzer struct {
	OnAnalyze func(ctx context.Context, chunk string) (paperModel.ChunkResult, error)
}

func (m *MockChunkAnalyzer) Analyze(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
	if m.OnAnalyze != nil {
		return m.OnAnalyze(ctx, chunk)
	}
	return paperModel.ChunkResult{Goal: "mock goal"}, nil
}

// MockEmbedder stands in for the embedding client
type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1, 0.2}, nil
}

// MockResultCache stands in for the semantic result cache
type MockResultCache struct {
	OnGetCachedAnalysis func(ctx context.Context, vector []float32) (paperModel.AnalysisResult, bool, error)
	OnSaveAnalysis      func(ctx context.Context, id string, vector []float32, result paperModel.AnalysisResult) error
}

func (m *MockResultCache) GetCachedAnalysis(ctx context.Context, vector []float32) (paperModel.AnalysisResult, bool, error) {
	if m.OnGetCachedAnalysis != nil {
		return m.OnGetCachedAnalysis(ctx, vector)
	}
	return paperModel.AnalysisResult{}, false, nil
}

func (m *MockResultCache) SaveAnalysis(ctx context.Context, id string, vector []float32, result paperModel.AnalysisResult) error {
	if m.OnSaveAnalysis != nil {
		return m.OnSaveAnalysis(ctx, id, vector, result)
	}
	return nil
}
