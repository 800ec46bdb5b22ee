package critique

import (
	"context"

	"github.com/sharvik/CritiqueAPI/internal/adapter/utils"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer"
	"github.com/sharvik/CritiqueAPI/internal/critique/cache"
	"github.com/sharvik/CritiqueAPI/internal/critique/embedding"
	"github.com/sharvik/CritiqueAPI/internal/critique/extract"
	"github.com/sharvik/CritiqueAPI/internal/critique/pipeline"
	"github.com/sharvik/CritiqueAPI/internal/domain/jobModel"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

// Service is the only surface the worker sees - it doesn't need to know the
// extractor, model provider or cache behind it.
type Service interface {
	AnalyzePaper(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	extractor extract.TextExtractor
	analyzer  analyzer.ChunkAnalyzer
	cache     cache.ResultCache
	embedder  embedding.Embedder
	logger    *logger_i.Logger
}

// NewService wires the critique flow. cache and embedder may be nil - the
// service then analyzes every paper from scratch.
func NewService(ex extract.TextExtractor, an analyzer.ChunkAnalyzer, ca cache.ResultCache, em embedding.Embedder) Service {
	return &service{
		extractor: ex,
		analyzer:  an,
		cache:     ca,
		embedder:  em,
		logger:    logger_i.NewLogger("Critique Service :"),
	}
}

// AnalyzePaper runs extract -> normalize -> cache check -> pipeline for one
// uploaded paper. It always attaches an AnalysisResult to the returned job;
// terminal failures carry an error-shaped result plus a job error.
func (s *service) AnalyzePaper(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	jobt.CurrentStep = jobModel.AnalysisInit

	// Extraction
	rawText, err := s.executeExtractionStep(ctx, inMethodLogger, &jobt)
	if err != nil {
		result := pipeline.ErrorResult(pipeline.ErrInvalidInput)
		jobt.JobPayload.Analysis = &result
		return s.jobError(jobt, err, "EXTRACTION_FAILURE", false)
	}

	normalized := pipeline.Normalize(rawText)

	// Cache Check - embedding failures only cost us the cache, never the job
	vector, cached, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, normalized)
	if found {
		return returnOutput(jobt, cached)
	}

	// Pipeline
	result, status := s.executePipelineStep(ctx, inMethodLogger, &jobt, normalized)
	if status.Kind != pipeline.ErrNone {
		jobt.JobPayload.Analysis = &result
		canRetry := status.Kind == pipeline.ErrAllChunksFailed
		return s.jobError(jobt, nil, string(status.Kind), canRetry)
	}
	if status.ChunksFailed > 0 {
		inMethodLogger.Info("Analysis finished with dropped chunks", "failed", status.ChunksFailed, "total", status.ChunksTotal)
	}

	// Background Cache Save - detached from the job's lifetime
	if s.cache != nil && vector != nil {
		saveCtx := context.WithoutCancel(ctx)
		go func() {
			err := s.cache.SaveAnalysis(saveCtx, utils.GetNewUUID(), vector, result)
			if err != nil {
				s.logger.Error("Failed to save analysis to cache")
			}
		}()
	}

	return returnOutput(jobt, result)
}
