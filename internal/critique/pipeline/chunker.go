package pipeline

import (
	"regexp"
	"strings"

	"github.com/sharvik/CritiqueAPI/internal/config"
)

const paragraphSep = "\n\n"

var reSentenceBreak = regexp.MustCompile(`[.!?]\s+`)

// ClampParams forces chunkSize into the configured bounds and caps overlap at
// MaxOverlapRatio of the effective chunk size. Zero/negative inputs fall back
// to the defaults.
func ClampParams(chunkSize, overlap int) (int, int) {
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}
	if chunkSize > config.MaxChunkSize {
		chunkSize = config.MaxChunkSize
	}
	if chunkSize < config.MinChunkSize {
		chunkSize = config.MinChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if maxOverlap := int(float64(chunkSize) * config.MaxOverlapRatio); overlap > maxOverlap {
		overlap = maxOverlap
	}
	return chunkSize, overlap
}

// Chunk splits normalized text into bounded, ordered segments. Paragraphs are
// the preferred unit; one-giant-paragraph documents fall back to sentence
// accumulation and finally to a fixed-stride split. Empty input yields no
// chunks. Callers must clamp the parameters first (see ClampParams).
func Chunk(text string, chunkSize, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	chunks := chunkByParagraphs(text, chunkSize, overlap)
	if len(chunks) <= 1 {
		chunks = chunkBySentences(text, chunkSize)
	}
	if len(chunks) <= 1 {
		chunks = chunkByStride(text, chunkSize, overlap)
	}
	return mergeShortChunks(chunks)
}

// Greedy paragraph accumulation. A closed chunk seeds the next one with its
// trailing `overlap` characters so context survives the cut. The paragraph
// that forced the cut joins the seed without a size check, so a seeded chunk
// can run to overlap + separator + paragraph length before it closes.
func chunkByParagraphs(text string, chunkSize, overlap int) []string {
	paragraphs := strings.Split(text, paragraphSep)

	var chunks []string
	var buf strings.Builder
	for _, para := range paragraphs {
		if buf.Len() > 0 && buf.Len()+len(paragraphSep)+len(para) > chunkSize {
			closed := buf.String()
			chunks = append(chunks, closed)
			buf.Reset()
			if overlap > 0 && len(closed) > overlap {
				buf.WriteString(closed[len(closed)-overlap:])
			}
		}
		if buf.Len() > 0 {
			buf.WriteString(paragraphSep)
		}
		buf.WriteString(para)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

// Fallback for one-giant-paragraph documents: same overflow rule over
// sentences, without overlap seeding.
func chunkBySentences(text string, chunkSize int) []string {
	sentences := splitSentences(text)

	var chunks []string
	var buf strings.Builder
	for _, sentence := range sentences {
		if buf.Len() > 0 && buf.Len()+1+len(sentence) > chunkSize {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(sentence)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range reSentenceBreak.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// Last resort: fixed-width split at chunkSize-overlap stride. At each boundary
// we look back up to BoundarySearchWindow characters for a sentence end and cut
// there, else cut at the raw stride position.
func chunkByStride(text string, chunkSize, overlap int) []string {
	stride := chunkSize - overlap
	if stride <= 0 {
		stride = chunkSize
	}

	var chunks []string
	for pos := 0; pos < len(text); {
		end := pos + stride
		if end >= len(text) {
			chunks = append(chunks, text[pos:])
			break
		}
		if cut := sentenceEndBefore(text, end); cut > pos {
			end = cut
		}
		chunks = append(chunks, text[pos:end])
		pos = end
	}
	return chunks
}

func sentenceEndBefore(text string, end int) int {
	limit := end - config.BoundarySearchWindow
	if limit < 0 {
		limit = 0
	}
	for i := end - 1; i >= limit; i-- {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 >= len(text) || isSpace(text[i+1]) {
			return i + 1
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// A chunk below MinChunkLength is never emitted standalone next to other
// chunks: a short non-final chunk folds forward into its successor, an
// undersized final remainder folds backward into its predecessor. A sole
// chunk is returned as-is, however small.
func mergeShortChunks(chunks []string) []string {
	if len(chunks) < 2 {
		return chunks
	}

	merged := make([]string, 0, len(chunks))
	for i := 0; i < len(chunks); i++ {
		chunk := chunks[i]
		for i+1 < len(chunks) && len(strings.TrimSpace(chunk)) < config.MinChunkLength {
			i++
			chunk += paragraphSep + chunks[i]
		}
		merged = append(merged, chunk)
	}

	last := merged[len(merged)-1]
	if len(merged) >= 2 && len(strings.TrimSpace(last)) < config.MinChunkLength {
		merged[len(merged)-2] += paragraphSep + last
		merged = merged[:len(merged)-1]
	}
	return merged
}
