package pipeline

import (
	"strings"
	"testing"

	"github.com/sharvik/CritiqueAPI/internal/config"
)

func TestClampParams(t *testing.T) {
	tests := []struct {
		name          string
		chunkSize     int
		overlap       int
		wantChunkSize int
		wantOverlap   int
	}{
		{"Defaults", 0, -5, config.DefaultChunkSize, 0},
		{"Oversized", 100000, 5000, config.MaxChunkSize, int(float64(config.MaxChunkSize) * config.MaxOverlapRatio)},
		{"Undersized", 100, 30, config.MinChunkSize, 30},
		{"InRange", 2000, 100, 2000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, lap := ClampParams(tt.chunkSize, tt.overlap)
			if size != tt.wantChunkSize || lap != tt.wantOverlap {
				t.Errorf("ClampParams(%d, %d) = (%d, %d), want (%d, %d)",
					tt.chunkSize, tt.overlap, size, lap, tt.wantChunkSize, tt.wantOverlap)
			}
		})
	}
}

func TestChunk_Empty(t *testing.T) {
	if got := Chunk("", 500, 0); got != nil {
		t.Errorf("Chunk(\"\") = %v, want nil", got)
	}
	if got := Chunk("  \n\n ", 500, 0); got != nil {
		t.Errorf("Chunk(whitespace) = %v, want nil", got)
	}
}

func TestChunk_ShortInputSingleChunk(t *testing.T) {
	text := "One short paragraph.\n\nAnd another."
	chunks := Chunk(text, 500, 50)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("single chunk must equal input\ngot:  %q\nwant: %q", chunks[0], text)
	}
}

// With no overlap a paragraph split must cover the document exactly.
func TestChunk_ParagraphCoverage(t *testing.T) {
	paragraphs := make([]string, 10)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("word ", 47) + "end."
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := Chunk(text, 500, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	rebuilt := strings.Join(chunks, "\n\n")
	if rebuilt != text {
		t.Error("joined chunks do not reconstruct the document")
	}
	for i, c := range chunks {
		if len(c) > 500 {
			t.Errorf("chunk %d exceeds size: %d", i, len(c))
		}
	}
}

func TestChunk_OverlapSeedsNextChunk(t *testing.T) {
	para1 := strings.Repeat("a", 400)
	para2 := strings.Repeat("b", 400)
	text := para1 + "\n\n" + para2

	chunks := Chunk(text, 500, 50)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != para1 {
		t.Errorf("first chunk should be the first paragraph")
	}

	wantPrefix := para1[len(para1)-50:] + "\n\n"
	if !strings.HasPrefix(chunks[1], wantPrefix) {
		t.Errorf("second chunk missing overlap seed, got prefix %q", chunks[1][:60])
	}
	if !strings.HasSuffix(chunks[1], para2) {
		t.Errorf("second chunk should end with the second paragraph")
	}
}

// A single huge paragraph has no blank lines to split on, so the sentence
// fallback must take over.
func TestChunk_SentenceFallback(t *testing.T) {
	sentence := "The quick brown fox jumps over the lazy dog."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 40))

	chunks := Chunk(text, 500, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 500 {
			t.Errorf("chunk %d exceeds size: %d", i, len(c))
		}
	}
	if rebuilt := strings.Join(chunks, " "); rebuilt != text {
		t.Error("joined sentence chunks do not reconstruct the document")
	}
}

// No paragraphs and no sentence punctuation forces the fixed-stride split.
func TestChunk_StrideFallback(t *testing.T) {
	text := strings.Repeat("a", 1200)

	chunks := Chunk(text, 500, 0)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != text {
		t.Error("stride chunks do not reconstruct the document")
	}
}

func TestChunk_ShortTailMerged(t *testing.T) {
	text := strings.Repeat("a", 1100)

	chunks := Chunk(text, 500, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected short tail to be merged, got %d chunks", len(chunks))
	}
	last := chunks[len(chunks)-1]
	if !strings.Contains(last, paragraphSep) {
		t.Error("merged tail should be joined with a paragraph break")
	}
}

// A short leading paragraph must not reach the model as its own chunk.
func TestChunk_ShortLeadingChunkMergedForward(t *testing.T) {
	text := strings.Repeat("x", 100) + "\n\n" + strings.Repeat("y", 450)

	chunks := Chunk(text, 500, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected the short lead to fold into its successor, got %d chunks", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("merged chunk should cover the whole document, got %q", chunks[0])
	}
}

func TestChunk_ShortMiddleChunkMergedForward(t *testing.T) {
	text := strings.Repeat("a", 450) + "\n\n" + strings.Repeat("b", 100) + "\n\n" + strings.Repeat("c", 450)

	chunks := Chunk(text, 500, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(strings.TrimSpace(c)) < config.MinChunkLength {
			t.Errorf("chunk %d below minimum length: %d", i, len(strings.TrimSpace(c)))
		}
	}
	if rebuilt := strings.Join(chunks, paragraphSep); rebuilt != text {
		t.Error("joined chunks do not reconstruct the document")
	}
}

// A seeded chunk carries at most the overlap, one separator and the
// paragraphs that fit the size check.
func TestChunk_SeededChunkBound(t *testing.T) {
	paragraphs := make([]string, 12)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat(string(rune('a'+i)), 240)
	}
	text := strings.Join(paragraphs, paragraphSep)

	const chunkSize, overlap = 500, 50
	chunks := Chunk(text, chunkSize, overlap)
	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > chunkSize+overlap+len(paragraphSep) {
			t.Errorf("chunk %d exceeds the seeded bound: %d", i, len(c))
		}
	}
}

func TestChunk_StrideHonorsOverlap(t *testing.T) {
	text := strings.Repeat("a", 1200)

	chunks := Chunk(text, 500, 50)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks at stride 450, got %d", len(chunks))
	}
	if len(chunks[0]) != 450 || len(chunks[1]) != 450 || len(chunks[2]) != 300 {
		t.Errorf("unexpected chunk lengths: %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}
