package rag

import (
	"path/filepath"
	"testing"
)

func TestIndexSearchRanksBySimilarity(t *testing.T) {
	ix := NewIndex()

	chunks := []Chunk{
		{DocumentID: "d1", DocumentName: "a.txt", Seq: 0, Text: "about cats"},
		{DocumentID: "d1", DocumentName: "a.txt", Seq: 1, Text: "about dogs"},
		{DocumentID: "d2", DocumentName: "b.txt", Seq: 0, Text: "about fish"},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	if err := ix.Insert(chunks, vectors); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	results := ix.Search([]float64{0, 1, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "about dogs" {
		t.Errorf("Expected best match 'about dogs', got %q", results[0].Chunk.Text)
	}
	if results[0].Score < results[1].Score {
		t.Error("Results are not ordered by descending score")
	}
}

func TestIndexSearchTopKBounds(t *testing.T) {
	ix := NewIndex()
	_ = ix.Insert(
		[]Chunk{{DocumentID: "d", Seq: 0, Text: "x"}},
		[][]float64{{1, 0}},
	)

	if got := ix.Search([]float64{1, 0}, 10); len(got) != 1 {
		t.Errorf("topK larger than index should clamp, got %d results", len(got))
	}
	if got := ix.Search([]float64{1, 0}, 0); got != nil {
		t.Errorf("Non-positive topK should return nothing, got %d results", len(got))
	}
}

func TestIndexInsertDimensionMismatch(t *testing.T) {
	ix := NewIndex()
	if err := ix.Insert([]Chunk{{Text: "a"}}, [][]float64{{1, 0, 0}}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := ix.Insert([]Chunk{{Text: "b"}}, [][]float64{{1, 0}}); err == nil {
		t.Error("Expected dimension mismatch error")
	}
}

func TestIndexSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "coll-1")

	if Exists(dir) {
		t.Fatal("Fresh directory should not report an existing index")
	}

	ix := NewIndex()
	chunks := []Chunk{
		{DocumentID: "d1", DocumentName: "a.txt", Seq: 0, Text: "alpha"},
		{DocumentID: "d2", DocumentName: "b.txt", Seq: 0, Text: "beta"},
	}
	vectors := [][]float64{{1, 0}, {0, 1}}
	if err := ix.Insert(chunks, vectors); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := ix.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !Exists(dir) {
		t.Fatal("Saved index not detected via manifest")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != ix.Len() {
		t.Errorf("Loaded index has %d chunks, expected %d", loaded.Len(), ix.Len())
	}
	if loaded.DocumentCount() != 2 {
		t.Errorf("Loaded index has %d documents, expected 2", loaded.DocumentCount())
	}

	// Same query, same ranking after the round trip
	orig := ix.Search([]float64{1, 0}, 1)
	reread := loaded.Search([]float64{1, 0}, 1)
	if orig[0].Chunk.Text != reread[0].Chunk.Text {
		t.Errorf("Ranking diverged after reload: %q vs %q", orig[0].Chunk.Text, reread[0].Chunk.Text)
	}
}
