package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

type fakeAnalyzer struct {
	fn func(ctx context.Context, chunk string) (paperModel.ChunkResult, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
	return f.fn(ctx, chunk)
}

// A document that normalizes into several paragraphs and is long enough to
// split at the minimum chunk size.
func multiChunkDocument() string {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("This sentence pads the research paper body with enough text to split. ")
	}
	return sb.String()
}

func TestRun_Success(t *testing.T) {
	var calls int32
	fake := &fakeAnalyzer{fn: func(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
		atomic.AddInt32(&calls, 1)
		return paperModel.ChunkResult{Goal: "chunk goal", Critique: "chunk critique"}, nil
	}}

	p := New(fake, 500, 0)
	result, status := p.Run(context.Background(), multiChunkDocument())

	if status.State != StateDone || status.Kind != ErrNone {
		t.Fatalf("status got %+v, want Done", status)
	}
	if status.ChunksTotal < 2 {
		t.Fatalf("expected multiple chunks, got %d", status.ChunksTotal)
	}
	if int32(status.ChunksTotal) != atomic.LoadInt32(&calls) {
		t.Errorf("analyzer called %d times for %d chunks", calls, status.ChunksTotal)
	}
	if !strings.Contains(result.Goal, "chunk goal") {
		t.Errorf("aggregated goal missing chunk content: %q", result.Goal)
	}
}

func TestRun_PartialFailureStillSucceeds(t *testing.T) {
	var calls int32
	fake := &fakeAnalyzer{fn: func(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
		if atomic.AddInt32(&calls, 1) == 2 {
			return paperModel.ChunkResult{}, errors.New("model timeout")
		}
		return paperModel.ChunkResult{Goal: "chunk goal"}, nil
	}}

	p := New(fake, 500, 0)
	result, status := p.Run(context.Background(), multiChunkDocument())

	if status.State != StateDone {
		t.Fatalf("one failed chunk must not fail the run, status %+v", status)
	}
	if status.ChunksFailed != 1 {
		t.Errorf("ChunksFailed got %d, want 1", status.ChunksFailed)
	}
	if strings.HasPrefix(result.Goal, "Error:") {
		t.Errorf("partial success should not be error-shaped: %q", result.Goal)
	}
}

func TestRun_AllChunksFailed(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
		return paperModel.ChunkResult{}, errors.New("provider down")
	}}

	p := New(fake, 500, 0)
	result, status := p.Run(context.Background(), multiChunkDocument())

	if status.Kind != ErrAllChunksFailed {
		t.Fatalf("status kind got %q, want %q", status.Kind, ErrAllChunksFailed)
	}
	if result.Critique != "Error: Failed to analyze the paper" {
		t.Errorf("Critique got %q", result.Critique)
	}
	if len(result.Questions.SubQuestions) != 1 {
		t.Errorf("error result should carry one explanatory question, got %v", result.Questions.SubQuestions)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
		t.Error("analyzer must not be called for empty input")
		return paperModel.ChunkResult{}, nil
	}}

	p := New(fake, 500, 0)
	result, status := p.Run(context.Background(), "   \n\n  ")

	if status.Kind != ErrNoExtractableContent {
		t.Fatalf("status kind got %q, want %q", status.Kind, ErrNoExtractableContent)
	}
	if result.Goal != "Error: Could not extract text from the paper" {
		t.Errorf("Goal got %q", result.Goal)
	}
}

func TestRun_PanickingAnalyzerDropsChunk(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
		panic("bad model reply")
	}}

	p := New(fake, 500, 0)
	result, status := p.Run(context.Background(), multiChunkDocument())

	if status.Kind != ErrAllChunksFailed {
		t.Fatalf("panicking chunks should be dropped, status %+v", status)
	}
	if !strings.HasPrefix(result.Goal, "Error:") {
		t.Errorf("expected error-shaped result, got %q", result.Goal)
	}
}

func TestErrorResult_Shapes(t *testing.T) {
	kinds := []ErrorKind{ErrInvalidInput, ErrNoExtractableContent, ErrAllChunksFailed, ErrCriticalFailure}
	for _, kind := range kinds {
		result := ErrorResult(kind)
		if !strings.HasPrefix(result.Goal, "Error:") {
			t.Errorf("%s: Goal not error-shaped: %q", kind, result.Goal)
		}
		if !strings.HasPrefix(result.Critique, "Error:") {
			t.Errorf("%s: Critique not error-shaped: %q", kind, result.Critique)
		}
		if len(result.Questions.SubQuestions) != 1 {
			t.Errorf("%s: want one explanatory question, got %v", kind, result.Questions.SubQuestions)
		}
	}
}
