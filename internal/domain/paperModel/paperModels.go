package paperModel

// ReviewerQuestions is the structured question block a reviewer would raise
// about a paper: one main question, ordered sub-questions and a short
// narrative on which questions the paper already addresses.
type ReviewerQuestions struct {
	MainQuestion       string   `json:"main_question,omitempty"`
	SubQuestions       []string `json:"sub_questions,omitempty"`
	AddressedQuestions string   `json:"addressed_questions,omitempty"`
}

// ChunkResult holds the analysis of a single chunk. It is created once per
// chunk and never mutated afterwards.
type ChunkResult struct {
	Goal       string            `json:"goal,omitempty"`
	Hypothesis string            `json:"hypothesis,omitempty"`
	Methods    string            `json:"methods,omitempty"`
	Results    string            `json:"results,omitempty"`
	Conclusion string            `json:"conclusion,omitempty"`
	Critique   string            `json:"critique,omitempty"`
	Questions  ReviewerQuestions `json:"reviewer_questions"`
}

// AnalysisResult is the document-level result: the same shape as ChunkResult
// but aggregated over all surviving chunks.
type AnalysisResult struct {
	Goal       string            `json:"goal,omitempty"`
	Hypothesis string            `json:"hypothesis,omitempty"`
	Methods    string            `json:"methods,omitempty"`
	Results    string            `json:"results,omitempty"`
	Conclusion string            `json:"conclusion,omitempty"`
	Critique   string            `json:"critique,omitempty"`
	Questions  ReviewerQuestions `json:"reviewer_questions"`
}
