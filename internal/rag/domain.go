// Package rag holds the retrieval domain: chunking, embedding, the per-collection
// vector index with its on-disk snapshots, and the index cache.
package rag

import "context"

// RawDocument is the extracted text of one stored file, ready for indexing.
type RawDocument struct {
	ID   string // document identity in the metadata store
	Name string // user-supplied original filename, for source attribution
	Text string
}

// Chunk is a retrievable fragment of a document.
type Chunk struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Seq          int    `json:"seq"`
	Text         string `json:"text"`
}

// SearchResult is a chunk matched to a query with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Chunker splits extracted document text into chunks suitable for indexing.
type Chunker interface {
	Chunk(doc RawDocument) []Chunk
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator synthesizes a natural-language answer from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
