package rag

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// stubEmbedder produces deterministic vectors from text bytes.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	v := make([]float64, 8)
	for i, b := range []byte(text) {
		v[i%8] += float64(b)
	}
	return normalize(v), nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(t.TempDir(), NewSentenceChunker(200, 20), stubEmbedder{})
}

func TestGetOrLoadReturnsNilForUnindexedCollection(t *testing.T) {
	c := newTestCache(t)

	ix, err := c.GetOrLoad("coll-1")
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	if ix != nil {
		t.Error("Expected nil index for a collection that was never indexed")
	}
	if c.Exists("coll-1") {
		t.Error("Exists should be false for an unindexed collection")
	}
}

func TestBuildOrUpdateCreatesAndPersists(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	docs := []RawDocument{{ID: "d1", Name: "a.txt", Text: "The device resets after holding the button. A light blinks twice."}}
	ix, err := c.BuildOrUpdate(ctx, "coll-1", docs)
	if err != nil {
		t.Fatalf("BuildOrUpdate failed: %v", err)
	}
	if ix.Len() == 0 {
		t.Fatal("Index is empty after BuildOrUpdate")
	}
	if !Exists(c.Dir("coll-1")) {
		t.Error("Snapshot not persisted after BuildOrUpdate")
	}

	// Cold cache simulates a process restart: the reloaded index must be
	// semantically equivalent to the one that was built.
	cold := NewCache(c.root, c.chunker, c.embedder)
	reloaded, err := cold.GetOrLoad("coll-1")
	if err != nil {
		t.Fatalf("Cold GetOrLoad failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("Cold GetOrLoad returned nil for a persisted index")
	}
	if reloaded.Len() != ix.Len() || reloaded.DocumentCount() != ix.DocumentCount() {
		t.Errorf("Reloaded index differs: %d/%d chunks, %d/%d documents",
			reloaded.Len(), ix.Len(), reloaded.DocumentCount(), ix.DocumentCount())
	}
}

func TestBuildOrUpdateIsIncremental(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{{ID: "d1", Name: "a.txt", Text: "First document text."}}); err != nil {
		t.Fatalf("First BuildOrUpdate failed: %v", err)
	}
	ix, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{{ID: "d2", Name: "b.txt", Text: "Second document text."}})
	if err != nil {
		t.Fatalf("Second BuildOrUpdate failed: %v", err)
	}

	if ix.DocumentCount() != 2 {
		t.Errorf("Expected 2 documents after incremental update, got %d", ix.DocumentCount())
	}
}

func TestConcurrentBuildOrUpdateSameCollection(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			doc := RawDocument{
				ID:   fmt.Sprintf("d%d", n),
				Name: fmt.Sprintf("f%d.txt", n),
				Text: fmt.Sprintf("Document number %d talks about topic %d.", n, n),
			}
			if _, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{doc}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Concurrent BuildOrUpdate failed: %v", err)
	}

	// The persisted snapshot must reflect every writer's documents, not just
	// the last one.
	reloaded, err := Load(c.Dir("coll-1"))
	if err != nil {
		t.Fatalf("Load after concurrent updates failed: %v", err)
	}
	if reloaded.DocumentCount() != writers {
		t.Errorf("Lost updates: snapshot has %d documents, expected %d", reloaded.DocumentCount(), writers)
	}
}

func TestEvictRemovesMemoryAndDisk(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{{ID: "d1", Name: "a.txt", Text: "Some indexed text."}}); err != nil {
		t.Fatalf("BuildOrUpdate failed: %v", err)
	}

	if err := c.Evict("coll-1"); err != nil {
		t.Fatalf("Evict failed: %v", err)
	}
	if c.Exists("coll-1") {
		t.Error("Index still exists after Evict")
	}
	if ix, _ := c.GetOrLoad("coll-1"); ix != nil {
		t.Error("GetOrLoad returned an index after Evict")
	}

	// Evicting again must be a no-op
	if err := c.Evict("coll-1"); err != nil {
		t.Fatalf("Second Evict failed: %v", err)
	}
}

func TestFailedBatchLeavesIndexAndSnapshotUntouched(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{{ID: "d1", Name: "a.txt", Text: "First document text."}}); err != nil {
		t.Fatalf("BuildOrUpdate failed: %v", err)
	}
	before, err := c.GetOrLoad("coll-1")
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	lenBefore := before.Len()

	// Second document of the batch has no indexable text, failing the batch
	// after the first document was already embedded and inserted.
	_, err = c.BuildOrUpdate(ctx, "coll-1", []RawDocument{
		{ID: "d2", Name: "b.txt", Text: "Second document text."},
		{ID: "d3", Name: "blank.txt", Text: "   "},
	})
	if err == nil {
		t.Fatal("Expected the batch to fail")
	}

	after, err := c.GetOrLoad("coll-1")
	if err != nil {
		t.Fatalf("GetOrLoad after failed batch failed: %v", err)
	}
	if after.Len() != lenBefore || after.DocumentCount() != 1 {
		t.Errorf("Failed batch mutated the live index: %d chunks, %d documents", after.Len(), after.DocumentCount())
	}
	reloaded, err := Load(c.Dir("coll-1"))
	if err != nil {
		t.Fatalf("Load after failed batch failed: %v", err)
	}
	if reloaded.Len() != after.Len() || reloaded.DocumentCount() != after.DocumentCount() {
		t.Errorf("Live index (%d chunks) and snapshot (%d chunks) diverged", after.Len(), reloaded.Len())
	}

	// Retrying with the batch repaired must index d2 exactly once.
	if _, err := c.BuildOrUpdate(ctx, "coll-1", []RawDocument{
		{ID: "d2", Name: "b.txt", Text: "Second document text."},
		{ID: "d3", Name: "c.txt", Text: "Third document text."},
	}); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	final, err := c.GetOrLoad("coll-1")
	if err != nil {
		t.Fatalf("GetOrLoad after retry failed: %v", err)
	}
	if final.DocumentCount() != 3 {
		t.Errorf("Expected 3 documents after retry, got %d", final.DocumentCount())
	}
	wantD2 := len(c.chunker.Chunk(RawDocument{ID: "d2", Name: "b.txt", Text: "Second document text."}))
	gotD2 := 0
	for _, ch := range final.chunks {
		if ch.DocumentID == "d2" {
			gotD2++
		}
	}
	if gotD2 != wantD2 {
		t.Errorf("Document d2 indexed %d chunks, expected %d", gotD2, wantD2)
	}
}

func TestBuildOrUpdateRejectsEmptyDocument(t *testing.T) {
	c := newTestCache(t)
	if _, err := c.BuildOrUpdate(context.Background(), "coll-1", []RawDocument{{ID: "d1", Name: "empty.txt", Text: "   "}}); err == nil {
		t.Error("Expected error for a document with no indexable text")
	}
}
