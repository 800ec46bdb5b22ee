package analyzer

import (
	"context"
	"fmt"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

// ChunkAnalyzer turns one chunk of paper text into a structured ChunkResult.
// Implementations are remote model calls: slow, order-insensitive and allowed
// to fail per chunk. Retry/skip policy belongs to the caller, not here.
type ChunkAnalyzer interface {
	Analyze(ctx context.Context, chunk string) (paperModel.ChunkResult, error)
}

// ModelError marks a failed model-backend call. Task names which of the three
// per-chunk calls failed (sections, critique or questions).
type ModelError struct {
	Task string
	Err  error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model call failed during %s: %v", e.Task, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
