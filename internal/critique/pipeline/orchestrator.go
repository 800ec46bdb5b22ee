package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer"
	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
	"github.com/sharvik/CritiqueAPI/internal/metrics"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

type State string

const (
	StateNotStarted  State = "NotStarted"
	StateNormalizing State = "Normalizing"
	StateChunking    State = "Chunking"
	StateAnalyzing   State = "Analyzing"
	StateAggregating State = "Aggregating"
	StateDone        State = "Done"
	StateErrored     State = "Errored"
)

type ErrorKind string

const (
	ErrNone                 ErrorKind = ""
	ErrInvalidInput         ErrorKind = "INVALID_INPUT"
	ErrNoExtractableContent ErrorKind = "NO_EXTRACTABLE_CONTENT"
	ErrAllChunksFailed      ErrorKind = "ALL_CHUNKS_FAILED"
	ErrCriticalFailure      ErrorKind = "CRITICAL_FAILURE"
)

// RunStatus reports where a run ended up and how the chunks fared.
type RunStatus struct {
	State        State
	Kind         ErrorKind
	ChunksTotal  int
	ChunksFailed int
}

// Pipeline drives normalize -> chunk -> analyze -> aggregate for one document.
// It holds no state across runs; every document is processed independently.
type Pipeline struct {
	analyzer    analyzer.ChunkAnalyzer
	chunkSize   int
	overlap     int
	concurrency int
	logger      *logger_i.Logger
}

func New(chunkAnalyzer analyzer.ChunkAnalyzer, chunkSize, overlap int) *Pipeline {
	size, lap := ClampParams(chunkSize, overlap)
	return &Pipeline{
		analyzer:    chunkAnalyzer,
		chunkSize:   size,
		overlap:     lap,
		concurrency: config.MaxConcurrentChunkCalls,
		logger:      logger_i.NewLogger("Pipeline"),
	}
}

// Run analyzes one document. It always returns a usable AnalysisResult: on a
// terminal failure the result is error-shaped (prose fields start with
// "Error:", one explanatory sub-question) and the status carries the kind.
// Nothing escapes this boundary as a panic or an error value.
func (p *Pipeline) Run(ctx context.Context, text string) (result paperModel.AnalysisResult, status RunStatus) {
	status = RunStatus{State: StateNotStarted}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("pipeline_run", time.Since(start)) }()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Critical failure during analysis", "panic", r, "state", status.State)
			status.State = StateErrored
			status.Kind = ErrCriticalFailure
			result = ErrorResult(ErrCriticalFailure)
		}
	}()

	status.State = StateNormalizing
	normalized := Normalize(text)

	status.State = StateChunking
	chunks := Chunk(normalized, p.chunkSize, p.overlap)
	status.ChunksTotal = len(chunks)
	if len(chunks) == 0 {
		p.logger.Error("No chunks were generated from the paper text")
		status.State = StateErrored
		status.Kind = ErrNoExtractableContent
		return ErrorResult(ErrNoExtractableContent), status
	}
	p.logger.Debug("Split paper", "chunks", len(chunks), "chunkSize", p.chunkSize, "overlap", p.overlap)
	metrics.ObserveChunksPerDocument(len(chunks))

	status.State = StateAnalyzing
	results := p.analyzeChunks(ctx, chunks, &status)
	if len(results) == 0 {
		p.logger.Error("All chunks failed to process", "chunks", len(chunks))
		status.State = StateErrored
		status.Kind = ErrAllChunksFailed
		return ErrorResult(ErrAllChunksFailed), status
	}

	status.State = StateAggregating
	aggregated, err := Aggregate(results)
	if err != nil {
		//unreachable unless the analyze step is broken
		p.logger.Error("Aggregation failed", "error", err)
		status.State = StateErrored
		status.Kind = ErrCriticalFailure
		return ErrorResult(ErrCriticalFailure), status
	}

	status.State = StateDone
	return aggregated, status
}

// analyzeChunks fans the per-chunk calls out over a bounded semaphore. The
// slot slice keeps chunk->result association positional, so aggregation order
// matches document order no matter how the calls interleave. A failed chunk is
// logged, counted and dropped - one bad chunk must not fail the document.
func (p *Pipeline) analyzeChunks(ctx context.Context, chunks []string, status *RunStatus) []paperModel.ChunkResult {
	type slot struct {
		result paperModel.ChunkResult
		ok     bool
	}
	slots := make([]slot, len(chunks))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("Chunk analysis panicked - dropping chunk", "chunk", i+1, "panic", r)
				}
			}()

			start := time.Now()
			res, err := p.analyzer.Analyze(ctx, chunk)
			metrics.CaptureExecutionMetrics("chunk_analysis", time.Since(start))
			if err != nil {
				p.logger.Error("Chunk analysis failed - dropping chunk", "chunk", i+1, "total", len(chunks), "error", err)
				metrics.IncrementChunkFailures()
				return
			}
			slots[i] = slot{result: res, ok: true}
		}(i, chunk)
	}
	wg.Wait()

	results := make([]paperModel.ChunkResult, 0, len(chunks))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.result)
		} else {
			status.ChunksFailed++
		}
	}
	return results
}

// ErrorResult renders a terminal failure in the legacy result shape the API
// promises: prose fields prefixed with "Error:" and a single explanatory
// sub-question. Callers receive this instead of an error value.
func ErrorResult(kind ErrorKind) paperModel.AnalysisResult {
	switch kind {
	case ErrInvalidInput:
		return errorShaped("Error: Invalid input text",
			"Error: Invalid input text",
			"Could not process due to invalid input")
	case ErrNoExtractableContent:
		return errorShaped("Error: Could not extract text from the paper",
			"Error: Could not extract text for critique",
			"Could not generate questions due to text extraction error")
	case ErrAllChunksFailed:
		return errorShaped("Error: Failed to analyze the paper",
			"Error: Failed to analyze the paper",
			"Failed to generate questions due to analysis error")
	default:
		return errorShaped("Error: Critical failure during analysis",
			"Error: Analysis failed during processing",
			"Analysis failed due to system error")
	}
}

func errorShaped(goal, critique, question string) paperModel.AnalysisResult {
	return paperModel.AnalysisResult{
		Goal:     goal,
		Critique: critique,
		Questions: paperModel.ReviewerQuestions{
			SubQuestions: []string{question},
		},
	}
}
