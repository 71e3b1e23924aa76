package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache maps a collection identity to its queryable index, avoiding repeated
// snapshot deserialization. Loaded indexes are shared across requests.
//
// Mutations on one collection never interleave: BuildOrUpdate and Evict hold
// a per-collection mutex for the whole read-modify-persist sequence, while
// mutations on different collections proceed independently. Queries against
// an already-loaded index only take the map read lock.
type Cache struct {
	root     string
	chunker  Chunker
	embedder Embedder

	mu      sync.RWMutex
	indexes map[string]*Index

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewCache creates an index cache persisting snapshots under root.
func NewCache(root string, chunker Chunker, embedder Embedder) *Cache {
	return &Cache{
		root:     root,
		chunker:  chunker,
		embedder: embedder,
		indexes:  make(map[string]*Index),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Dir returns the snapshot directory for a collection.
func (c *Cache) Dir(collectionID string) string {
	return filepath.Join(c.root, collectionID)
}

// lockFor returns the mutex serializing mutations for one collection.
func (c *Cache) lockFor(collectionID string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	l, ok := c.locks[collectionID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[collectionID] = l
	}
	return l
}

// GetOrLoad returns the collection's index, deserializing it from disk on a
// cold hit. A nil index with nil error means the collection has never been
// indexed; callers treat that as "not ready", not as a failure.
func (c *Cache) GetOrLoad(collectionID string) (*Index, error) {
	c.mu.RLock()
	ix, ok := c.indexes[collectionID]
	c.mu.RUnlock()
	if ok {
		return ix, nil
	}

	dir := c.Dir(collectionID)
	if !Exists(dir) {
		return nil, nil
	}

	ix, err := Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load index for collection %s: %w", collectionID, err)
	}

	c.mu.Lock()
	// Another request may have loaded it while we were reading from disk;
	// keep the first copy so concurrent readers share one index.
	if existing, ok := c.indexes[collectionID]; ok {
		ix = existing
	} else {
		c.indexes[collectionID] = ix
	}
	c.mu.Unlock()

	return ix, nil
}

// Exists reports whether the collection has an index, loaded or persisted.
func (c *Cache) Exists(collectionID string) bool {
	c.mu.RLock()
	_, ok := c.indexes[collectionID]
	c.mu.RUnlock()
	if ok {
		return true
	}
	return Exists(c.Dir(collectionID))
}

// BuildOrUpdate chunks and embeds the given documents into the collection's
// index, creating it when no snapshot exists yet. Inserts are staged on a
// copy of the loaded index and the cache entry is swapped only after the new
// snapshot is persisted, so a failed batch leaves both the live index and the
// on-disk state exactly as they were.
func (c *Cache) BuildOrUpdate(ctx context.Context, collectionID string, docs []RawDocument) (*Index, error) {
	lock := c.lockFor(collectionID)
	lock.Lock()
	defer lock.Unlock()

	ix, err := c.GetOrLoad(collectionID)
	if err != nil {
		return nil, err
	}

	work := NewIndex()
	if ix != nil {
		work = ix.clone()
	}

	for _, doc := range docs {
		chunks := c.chunker.Chunk(doc)
		if len(chunks) == 0 {
			return nil, fmt.Errorf("document %s produced no indexable text", doc.Name)
		}
		vectors := make([][]float64, len(chunks))
		for i, ch := range chunks {
			v, err := c.embedder.Embed(ctx, ch.Text)
			if err != nil {
				return nil, fmt.Errorf("failed to embed chunk %d of %s: %w", ch.Seq, doc.Name, err)
			}
			vectors[i] = v
		}
		if err := work.Insert(chunks, vectors); err != nil {
			return nil, err
		}
	}

	if err := work.Save(c.Dir(collectionID)); err != nil {
		return nil, fmt.Errorf("failed to persist index for collection %s: %w", collectionID, err)
	}

	c.mu.Lock()
	c.indexes[collectionID] = work
	c.mu.Unlock()

	return work, nil
}

// Evict drops the in-memory entry and deletes the on-disk snapshot. Both
// steps are no-ops when already absent.
func (c *Cache) Evict(collectionID string) error {
	lock := c.lockFor(collectionID)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	delete(c.indexes, collectionID)
	c.mu.Unlock()

	// The per-collection mutex is kept: dropping it here would let a waiter
	// on the old mutex run concurrently with a caller that fetched a fresh one.
	if err := os.RemoveAll(c.Dir(collectionID)); err != nil {
		return fmt.Errorf("failed to remove index snapshot: %w", err)
	}

	return nil
}
