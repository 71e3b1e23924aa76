package rag

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// ManifestName is the marker file whose presence inside a snapshot directory
// means "an index exists for this collection".
const ManifestName = "docstore.json"

const vectorsName = "vectors.json"

// Index is a per-collection similarity index: chunk texts with their
// embedding vectors, searched by brute-force cosine similarity. Vectors are
// stored L2-normalized so cosine similarity reduces to a dot product.
type Index struct {
	mu        sync.RWMutex
	dimension int
	chunks    []Chunk
	vectors   [][]float64
	documents map[string]string // document id -> original name
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{documents: make(map[string]string)}
}

// Insert adds chunks with their vectors. The first insert fixes the
// dimensionality; later inserts must match it.
func (ix *Index) Insert(chunks []Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.dimension == 0 {
		ix.dimension = len(vectors[0])
	}
	for _, v := range vectors {
		if len(v) != ix.dimension {
			return fmt.Errorf("vector dimension mismatch: got %d, index has %d", len(v), ix.dimension)
		}
	}

	ix.chunks = append(ix.chunks, chunks...)
	ix.vectors = append(ix.vectors, vectors...)
	for _, ch := range chunks {
		ix.documents[ch.DocumentID] = ch.DocumentName
	}
	return nil
}

// Search returns the topK most similar chunks for the query vector, highest
// score first.
func (ix *Index) Search(vector []float64, topK int) []SearchResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if topK <= 0 || len(ix.vectors) == 0 {
		return nil
	}

	results := make([]SearchResult, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = SearchResult{Chunk: ix.chunks[i], Score: dot(v, vector)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// DocumentCount reports the number of distinct documents in the index.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.documents)
}

// clone returns a copy sharing no mutable state with the receiver, so staged
// inserts never touch an index other goroutines may be searching.
func (ix *Index) clone() *Index {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	cp := NewIndex()
	cp.dimension = ix.dimension
	cp.chunks = append([]Chunk(nil), ix.chunks...)
	cp.vectors = append([][]float64(nil), ix.vectors...)
	for id, name := range ix.documents {
		cp.documents[id] = name
	}
	return cp
}

// manifest is the snapshot descriptor persisted alongside the vectors.
type manifest struct {
	Dimension  int               `json:"dimension"`
	ChunkCount int               `json:"chunk_count"`
	Documents  map[string]string `json:"documents"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type vectorEntry struct {
	Chunk  Chunk     `json:"chunk"`
	Vector []float64 `json:"vector"`
}

// Save writes a full snapshot of the index into dir. Both files are written
// via temp-and-rename; the manifest goes last so a partially written snapshot
// is never detected as an existing index.
func (ix *Index) Save(dir string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	entries := make([]vectorEntry, len(ix.chunks))
	for i := range ix.chunks {
		entries[i] = vectorEntry{Chunk: ix.chunks[i], Vector: ix.vectors[i]}
	}
	if err := writeJSONAtomic(filepath.Join(dir, vectorsName), entries); err != nil {
		return err
	}

	m := manifest{
		Dimension:  ix.dimension,
		ChunkCount: len(ix.chunks),
		Documents:  ix.documents,
		UpdatedAt:  time.Now().UTC(),
	}
	return writeJSONAtomic(filepath.Join(dir, ManifestName), m)
}

// Load deserializes an index snapshot from dir.
func Load(dir string) (*Index, error) {
	var m manifest
	if err := readJSON(filepath.Join(dir, ManifestName), &m); err != nil {
		return nil, fmt.Errorf("failed to read index manifest: %w", err)
	}

	var entries []vectorEntry
	if err := readJSON(filepath.Join(dir, vectorsName), &entries); err != nil {
		return nil, fmt.Errorf("failed to read index vectors: %w", err)
	}

	ix := NewIndex()
	ix.dimension = m.Dimension
	ix.chunks = make([]Chunk, len(entries))
	ix.vectors = make([][]float64, len(entries))
	for i, e := range entries {
		ix.chunks[i] = e.Chunk
		ix.vectors[i] = e.Vector
	}
	if m.Documents != nil {
		ix.documents = m.Documents
	}
	return ix, nil
}

// Exists reports whether a persisted index is present in dir, by probing the
// manifest only. Cheap compared to deserializing the snapshot.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil && !info.IsDir()
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
