package analyzer

import (
	"context"
	"fmt"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

// TextGenerator is the provider boundary: one prompt in, one completion out.
// Gemini and OpenAI both sit behind it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type modelAnalyzer struct {
	gen    TextGenerator
	logger *logger_i.Logger
}

func NewModelAnalyzer(gen TextGenerator) ChunkAnalyzer {
	return &modelAnalyzer{gen: gen, logger: logger_i.NewLogger("Analyzer")}
}

// Analyze runs the three review tasks against one chunk. Any failed model
// call fails the whole chunk - a partially-filled chunk result would skew
// aggregation.
func (a *modelAnalyzer) Analyze(ctx context.Context, chunk string) (paperModel.ChunkResult, error) {
	var result paperModel.ChunkResult

	sections, err := a.generate(ctx, "sections", sectionsPrompt, chunk)
	if err != nil {
		return paperModel.ChunkResult{}, err
	}
	parseSections(sections, &result)

	critique, err := a.generate(ctx, "critique", critiquePrompt, chunk)
	if err != nil {
		return paperModel.ChunkResult{}, err
	}
	result.Critique = parseCritique(critique)

	questions, err := a.generate(ctx, "questions", questionsPrompt, chunk)
	if err != nil {
		return paperModel.ChunkResult{}, err
	}
	result.Questions = parseQuestions(questions)

	return result, nil
}

func (a *modelAnalyzer) generate(ctx context.Context, task string, prompt string, chunk string) (string, error) {
	reply, err := a.gen.Generate(ctx, fmt.Sprintf(prompt, chunk))
	if err != nil {
		a.logger.Error("Model call failed", "task", task, "error", err)
		return "", &ModelError{Task: task, Err: err}
	}
	return reply, nil
}
