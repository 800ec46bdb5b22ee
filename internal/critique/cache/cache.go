package cache

import (
	"context"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

// ResultCache stores finished analyses keyed by the embedding of the
// normalized paper text, so a re-upload of the same paper skips the model.
type ResultCache interface {
	GetCachedAnalysis(ctx context.Context, vector []float32) (paperModel.AnalysisResult, bool, error)
	SaveAnalysis(ctx context.Context, id string, vector []float32, result paperModel.AnalysisResult) error
}
