package pipeline

import (
	"regexp"
	"strings"
)

// The normalizer is a best-effort cleanup for text pulled out of PDFs, not a
// parser. Step order matters: newline collapse destroys the original paragraph
// structure on purpose, re-paragraphing rebuilds it from sentence punctuation.
var (
	reBlankLines    = regexp.MustCompile(`\s*\n\s*\n\s*`)
	reLineBreaks    = regexp.MustCompile(`\s*\n\s*`)
	reWhitespace    = regexp.MustCompile(`\s+`)
	reSentenceEnd   = regexp.MustCompile(`([.!?])\s+`)
	reEmptyBrackets = regexp.MustCompile(`\{\s*\}`)
	reOpenParen     = regexp.MustCompile(`\s*\(\s*`)
	reCloseParen    = regexp.MustCompile(`\s*\)\s*`)
	rePreAbstract   = regexp.MustCompile(`(?s)^.*?Abstract\s*`)
	rePageNumber    = regexp.MustCompile(`\d+\s*$`)
)

// Normalize cleans raw extracted text for chunking. It is pure and total:
// any input string produces a result, empty input produces an empty string.
func Normalize(raw string) string {
	text := reBlankLines.ReplaceAllString(raw, "\n\n")
	text = reLineBreaks.ReplaceAllString(text, " ")

	text = reWhitespace.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "\f", "")
	text = reSentenceEnd.ReplaceAllString(text, "${1}\n\n")

	//math notation artifacts
	text = reEmptyBrackets.ReplaceAllString(text, "")
	text = reOpenParen.ReplaceAllString(text, " (")
	text = reCloseParen.ReplaceAllString(text, ") ")

	//everything before the Abstract header is title/author noise
	text = rePreAbstract.ReplaceAllString(text, "Abstract\n\n")
	text = rePageNumber.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
