package pipeline

import (
	"errors"
	"strings"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

// ErrEmptyAggregation means Aggregate was called with no chunk results. The
// orchestrator never does that, so seeing this error is an internal bug.
var ErrEmptyAggregation = errors.New("aggregate called with no chunk results")

// Aggregate merges ordered per-chunk results into one document-level result.
// Prose fields are blank-line joins of the non-empty per-chunk values, main
// questions are joined with " | " and sub-questions are deduplicated by
// substring containment. A single result is returned unchanged.
func Aggregate(results []paperModel.ChunkResult) (paperModel.AnalysisResult, error) {
	if len(results) == 0 {
		return paperModel.AnalysisResult{}, ErrEmptyAggregation
	}

	if len(results) == 1 {
		r := results[0]
		return paperModel.AnalysisResult{
			Goal:       r.Goal,
			Hypothesis: r.Hypothesis,
			Methods:    r.Methods,
			Results:    r.Results,
			Conclusion: r.Conclusion,
			Critique:   r.Critique,
			Questions:  r.Questions,
		}, nil
	}

	var goals, hypotheses, methods, findings, conclusions, critiques []string
	var mains, subs, addressed []string
	for _, r := range results {
		goals = appendNonEmpty(goals, r.Goal)
		hypotheses = appendNonEmpty(hypotheses, r.Hypothesis)
		methods = appendNonEmpty(methods, r.Methods)
		findings = appendNonEmpty(findings, r.Results)
		conclusions = appendNonEmpty(conclusions, r.Conclusion)
		critiques = appendNonEmpty(critiques, r.Critique)

		mains = appendNonEmpty(mains, r.Questions.MainQuestion)
		subs = append(subs, r.Questions.SubQuestions...)
		addressed = appendNonEmpty(addressed, r.Questions.AddressedQuestions)
	}

	return paperModel.AnalysisResult{
		Goal:       strings.Join(goals, paragraphSep),
		Hypothesis: strings.Join(hypotheses, paragraphSep),
		Methods:    strings.Join(methods, paragraphSep),
		Results:    strings.Join(findings, paragraphSep),
		Conclusion: strings.Join(conclusions, paragraphSep),
		Critique:   strings.Join(critiques, paragraphSep),
		Questions: paperModel.ReviewerQuestions{
			MainQuestion:       strings.Join(mains, " | "),
			SubQuestions:       dedupeQuestions(subs),
			AddressedQuestions: strings.Join(addressed, paragraphSep),
		},
	}, nil
}

func appendNonEmpty(values []string, v string) []string {
	if v == "" {
		return values
	}
	return append(values, v)
}

// A question is dropped when it contains, or is contained in, one we already
// kept - exact duplicates and truncated/expanded variants collapse to the
// first-seen representative.
func dedupeQuestions(all []string) []string {
	var unique []string
	for _, q := range all {
		if q == "" {
			continue
		}
		duplicate := false
		for _, kept := range unique {
			if strings.Contains(kept, q) || strings.Contains(q, kept) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, q)
		}
	}
	return unique
}
