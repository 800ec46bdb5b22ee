package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

func TestParseSections(t *testing.T) {
	reply := `Goal: Measure caching impact
Hypothesis: Caching halves latency
Methods: Benchmark on three workloads
spread over two lines
Results: Latency dropped 40%
Conclusion: Caching helps`

	var result paperModel.ChunkResult
	parseSections(reply, &result)

	if result.Goal != "Measure caching impact" {
		t.Errorf("Goal got %q", result.Goal)
	}
	if result.Methods != "Benchmark on three workloads\nspread over two lines" {
		t.Errorf("multi-line body not accumulated, got %q", result.Methods)
	}
	if result.Conclusion != "Caching helps" {
		t.Errorf("Conclusion got %q", result.Conclusion)
	}
}

func TestParseSections_MarkdownDecorations(t *testing.T) {
	reply := "**Goal:** Measure caching impact\n## Results: Latency dropped"

	var result paperModel.ChunkResult
	parseSections(reply, &result)

	if result.Goal != "Measure caching impact" {
		t.Errorf("bolded label not parsed, got %q", result.Goal)
	}
	if result.Results != "Latency dropped" {
		t.Errorf("headered label not parsed, got %q", result.Results)
	}
}

func TestParseSections_MissingLabels(t *testing.T) {
	var result paperModel.ChunkResult
	parseSections("Goal: only a goal", &result)

	if result.Goal != "only a goal" {
		t.Errorf("Goal got %q", result.Goal)
	}
	if result.Hypothesis != "" || result.Methods != "" {
		t.Errorf("absent labels should stay empty, got %+v", result)
	}
}

func TestParseCritique_LabelAndFallback(t *testing.T) {
	if got := parseCritique("Critique: The sample is too small"); got != "The sample is too small" {
		t.Errorf("labeled critique got %q", got)
	}
	// models sometimes skip the label and just answer
	if got := parseCritique("  The sample is too small  "); got != "The sample is too small" {
		t.Errorf("unlabeled critique got %q", got)
	}
}

func TestParseQuestions(t *testing.T) {
	reply := `MainQuestion: Why was the control group so small?
SubQuestions:
- How was noise handled?
- Were outliers removed?
AddressedQuestions: The paper addresses scaling concerns.`

	got := parseQuestions(reply)

	if got.MainQuestion != "Why was the control group so small?" {
		t.Errorf("MainQuestion got %q", got.MainQuestion)
	}
	if len(got.SubQuestions) != 2 || got.SubQuestions[0] != "How was noise handled?" {
		t.Errorf("SubQuestions got %v", got.SubQuestions)
	}
	if got.AddressedQuestions != "The paper addresses scaling concerns." {
		t.Errorf("AddressedQuestions got %q", got.AddressedQuestions)
	}
}

func TestSplitQuestionList_Numbered(t *testing.T) {
	got := splitQuestionList("1. First question?\n2) Second question?\n* Third question?")
	want := []string{"First question?", "Second question?", "Third question?"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("question %d got %q, want %q", i, got[i], want[i])
		}
	}
}

type scriptedGenerator struct {
	replies map[string]string
	err     error
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	for key, reply := range g.replies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

func TestModelAnalyzer_Analyze(t *testing.T) {
	gen := &scriptedGenerator{replies: map[string]string{
		"Extract the important sections": "Goal: test goal\nMethods: test methods",
		"Critique the research paper":    "Critique: test critique",
		"Generate smart":                 "MainQuestion: test question?\nSubQuestions:\n- sub one?",
	}}

	result, err := NewModelAnalyzer(gen).Analyze(context.Background(), "some chunk text")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Goal != "test goal" || result.Methods != "test methods" {
		t.Errorf("sections got %+v", result)
	}
	if result.Critique != "test critique" {
		t.Errorf("Critique got %q", result.Critique)
	}
	if result.Questions.MainQuestion != "test question?" || len(result.Questions.SubQuestions) != 1 {
		t.Errorf("Questions got %+v", result.Questions)
	}
}

func TestModelAnalyzer_WrapsModelErrors(t *testing.T) {
	modelDown := errors.New("provider down")
	gen := &scriptedGenerator{err: modelDown}

	_, err := NewModelAnalyzer(gen).Analyze(context.Background(), "chunk")
	if err == nil {
		t.Fatal("expected error")
	}

	var me *ModelError
	if !errors.As(err, &me) {
		t.Fatalf("expected ModelError, got %T", err)
	}
	if me.Task != "sections" {
		t.Errorf("Task got %q, want sections", me.Task)
	}
	if !errors.Is(err, modelDown) {
		t.Error("wrapped cause lost")
	}
}
