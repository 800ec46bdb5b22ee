package pipeline

import (
	"errors"
	"testing"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

func TestAggregate_Empty(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrEmptyAggregation) {
		t.Errorf("expected ErrEmptyAggregation, got %v", err)
	}
}

func TestAggregate_SingleResultIdentity(t *testing.T) {
	chunk := paperModel.ChunkResult{
		Goal:       "Study X",
		Hypothesis: "H1",
		Methods:    "Survey",
		Results:    "Positive",
		Conclusion: "It works",
		Critique:   "Small sample",
		Questions: paperModel.ReviewerQuestions{
			MainQuestion:       "Why X?",
			SubQuestions:       []string{"What about Y?"},
			AddressedQuestions: "Z is covered",
		},
	}

	got, err := Aggregate([]paperModel.ChunkResult{chunk})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got.Goal != chunk.Goal || got.Critique != chunk.Critique {
		t.Errorf("single result should pass through unchanged, got %+v", got)
	}
	if got.Questions.MainQuestion != "Why X?" || len(got.Questions.SubQuestions) != 1 {
		t.Errorf("questions should pass through unchanged, got %+v", got.Questions)
	}
}

func TestAggregate_JoinsProseFields(t *testing.T) {
	results := []paperModel.ChunkResult{
		{Goal: "Study X", Critique: "Flaw A"},
		{Goal: "Study Y", Critique: "Flaw B"},
	}

	got, err := Aggregate(results)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got.Goal != "Study X\n\nStudy Y" {
		t.Errorf("Goal got %q", got.Goal)
	}
	if got.Critique != "Flaw A\n\nFlaw B" {
		t.Errorf("Critique got %q", got.Critique)
	}
}

func TestAggregate_SkipsEmptyFields(t *testing.T) {
	results := []paperModel.ChunkResult{
		{Goal: "Study X", Methods: ""},
		{Goal: "", Methods: "Survey"},
		{Goal: "Study Z", Methods: ""},
	}

	got, err := Aggregate(results)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got.Goal != "Study X\n\nStudy Z" {
		t.Errorf("empty goals should be skipped, got %q", got.Goal)
	}
	if got.Methods != "Survey" {
		t.Errorf("Methods got %q", got.Methods)
	}
}

func TestAggregate_JoinsMainQuestions(t *testing.T) {
	results := []paperModel.ChunkResult{
		{Questions: paperModel.ReviewerQuestions{MainQuestion: "Why X?"}},
		{Questions: paperModel.ReviewerQuestions{MainQuestion: "Why Y?"}},
	}

	got, err := Aggregate(results)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got.Questions.MainQuestion != "Why X? | Why Y?" {
		t.Errorf("MainQuestion got %q", got.Questions.MainQuestion)
	}
}

func TestAggregate_DedupesSubQuestionsByContainment(t *testing.T) {
	results := []paperModel.ChunkResult{
		{Questions: paperModel.ReviewerQuestions{SubQuestions: []string{"A is important"}}},
		{Questions: paperModel.ReviewerQuestions{SubQuestions: []string{"A", "B is different"}}},
	}

	got, err := Aggregate(results)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := []string{"A is important", "B is different"}
	if len(got.Questions.SubQuestions) != len(want) {
		t.Fatalf("SubQuestions got %v, want %v", got.Questions.SubQuestions, want)
	}
	for i, q := range want {
		if got.Questions.SubQuestions[i] != q {
			t.Errorf("SubQuestions[%d] got %q, want %q", i, got.Questions.SubQuestions[i], q)
		}
	}
}
