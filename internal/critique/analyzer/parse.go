package analyzer

import (
	"strings"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

var sectionLabels = []string{"Goal", "Hypothesis", "Methods", "Results", "Conclusion"}
var questionLabels = []string{"MainQuestion", "SubQuestions", "AddressedQuestions"}

// parseLabeled splits a model reply into label -> body. A line opening with
// "Label:" starts that label's body; following lines accumulate until the next
// label. Models like to bold or title labels, so leading markdown is stripped
// before matching.
func parseLabeled(text string, labels []string) map[string]string {
	parsed := make(map[string]string, len(labels))
	var current string

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimLeft(strings.TrimSpace(line), "*#_ ")

		matched := false
		for _, label := range labels {
			rest, ok := cutLabel(stripped, label)
			if !ok {
				continue
			}
			current = label
			parsed[current] = rest
			matched = true
			break
		}
		if matched || current == "" {
			continue
		}
		if parsed[current] == "" {
			parsed[current] = strings.TrimSpace(line)
		} else {
			parsed[current] = parsed[current] + "\n" + strings.TrimSpace(line)
		}
	}

	for label, body := range parsed {
		parsed[label] = strings.TrimSpace(strings.TrimSuffix(body, "**"))
	}
	return parsed
}

func cutLabel(line string, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	rest := strings.TrimLeft(line[len(label):], "*_")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	// bold markers can sit on either side of the colon
	rest = strings.TrimLeft(strings.TrimSpace(rest[1:]), "*_")
	return strings.TrimSpace(rest), true
}

func parseSections(reply string, result *paperModel.ChunkResult) {
	parsed := parseLabeled(reply, sectionLabels)
	result.Goal = parsed["Goal"]
	result.Hypothesis = parsed["Hypothesis"]
	result.Methods = parsed["Methods"]
	result.Results = parsed["Results"]
	result.Conclusion = parsed["Conclusion"]
}

// parseCritique tolerates replies that skip the label entirely and just
// answer in prose.
func parseCritique(reply string) string {
	parsed := parseLabeled(reply, []string{"Critique"})
	if critique, ok := parsed["Critique"]; ok && critique != "" {
		return critique
	}
	return strings.TrimSpace(reply)
}

func parseQuestions(reply string) paperModel.ReviewerQuestions {
	parsed := parseLabeled(reply, questionLabels)
	return paperModel.ReviewerQuestions{
		MainQuestion:       parsed["MainQuestion"],
		SubQuestions:       splitQuestionList(parsed["SubQuestions"]),
		AddressedQuestions: parsed["AddressedQuestions"],
	}
}

// splitQuestionList turns a bulleted or numbered list into one question per
// entry, dropping the list markers.
func splitQuestionList(body string) []string {
	var questions []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		if line != "" {
			questions = append(questions, line)
		}
	}
	return questions
}
