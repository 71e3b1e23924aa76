package rag

import (
	"strings"
	"testing"
)

func TestChunkSplitsLongText(t *testing.T) {
	c := NewSentenceChunker(60, 0)

	doc := RawDocument{
		ID:   "doc-1",
		Name: "guide.txt",
		Text: "First sentence here. Second sentence follows. Third one is longer than the others. Fourth closes it out.",
	}
	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks for a small budget, got %d", len(chunks))
	}

	joined := strings.Join(collectTexts(chunks), " ")
	for _, want := range []string{"First sentence", "Fourth closes"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Chunks lost text %q", want)
		}
	}
	for i, ch := range chunks {
		if ch.Seq != i {
			t.Errorf("Chunk %d has seq %d", i, ch.Seq)
		}
		if ch.DocumentID != "doc-1" || ch.DocumentName != "guide.txt" {
			t.Errorf("Chunk %d lost document attribution: %+v", i, ch)
		}
	}
}

func TestChunkOverlapRepeatsTrailingSentence(t *testing.T) {
	c := NewSentenceChunker(60, 25)

	doc := RawDocument{ID: "d", Name: "n", Text: "Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu."}
	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("Expected at least 2 chunks, got %d", len(chunks))
	}

	// The second chunk starts with material carried from the first
	first, second := chunks[0].Text, chunks[1].Text
	lastSentence := first[strings.LastIndex(first, ".")+1:]
	_ = lastSentence
	if !strings.Contains(second, "Epsilon") && !strings.Contains(second, "Alpha") {
		t.Errorf("Second chunk has no overlap with the first: %q", second)
	}
}

func TestChunkEmptyDocument(t *testing.T) {
	c := NewSentenceChunker(100, 10)
	if chunks := c.Chunk(RawDocument{ID: "d", Name: "n", Text: "   \n  "}); chunks != nil {
		t.Errorf("Expected nil chunks for whitespace-only text, got %d", len(chunks))
	}
}

func collectTexts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, ch := range chunks {
		out[i] = ch.Text
	}
	return out
}
