// query.go
//
// Query orchestration: collection resolve -> index resolve -> retrieval ->
// answer synthesis. Synthesis failures become structured results, never
// unhandled faults.

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docuchat/docuchat/internal/types"
)

// DefaultTopK is the number of retrieved fragments when the caller does not
// choose one.
const DefaultTopK = 3

// Source is one retrieved fragment backing an answer.
type Source struct {
	Text         string  `json:"text"`
	Score        float64 `json:"score"`
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
}

// AnswerResult is the orchestrator's caller-facing result object. Exactly one
// of Answer and ErrorMessage is meaningful; Indexed false means the
// collection exists but has no queryable content yet. Non-fatal outcomes
// carry their taxonomy kind in ErrorKind so callers can classify them
// without string matching.
type AnswerResult struct {
	CollectionName string     `json:"collection_name"`
	Query          string     `json:"query"`
	Answer         string     `json:"answer"`
	Sources        []Source   `json:"sources"`
	Indexed        bool       `json:"indexed"`
	ErrorKind      types.Kind `json:"error_kind,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// Query answers a natural-language question against a collection's index.
func (s *RAGService) Query(ctx context.Context, collectionID, question string, topK int) (*AnswerResult, error) {
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < 0 {
		return nil, types.Validation("top_k must be a positive integer")
	}
	if strings.TrimSpace(question) == "" {
		return nil, types.Validation("query must not be empty")
	}

	coll, err := s.GetCollection(collectionID)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{CollectionName: coll.Name, Query: question}

	ix, err := s.cache.GetOrLoad(coll.ID)
	if err != nil {
		return nil, types.Internal(err, "failed to resolve index for collection '%s'", coll.Name)
	}
	if ix == nil {
		// Not indexed yet: a structured result, no language-model call
		result.ErrorKind = types.KindIndexNotReady
		result.Answer = fmt.Sprintf("Collection '%s' has no indexed content yet. Build its index before querying.", coll.Name)
		return result, nil
	}
	result.Indexed = true

	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		qerr := types.QueryExecution(err, "failed to embed query: %v", err)
		log.Printf("Query failed for collection %s: %v", coll.Name, qerr)
		result.ErrorKind = qerr.Kind
		result.ErrorMessage = qerr.Message
		return result, nil
	}

	matches := ix.Search(vec, topK)
	for _, m := range matches {
		result.Sources = append(result.Sources, Source{
			Text:         m.Chunk.Text,
			Score:        m.Score,
			DocumentID:   m.Chunk.DocumentID,
			DocumentName: m.Chunk.DocumentName,
		})
	}

	answer, err := s.generator.Generate(ctx, buildPrompt(question, result.Sources))
	if err != nil {
		qerr := types.QueryExecution(err, "failed to synthesize answer: %v", err)
		log.Printf("Query failed for collection %s: %v", coll.Name, qerr)
		result.ErrorKind = qerr.Kind
		result.ErrorMessage = qerr.Message
		return result, nil
	}

	result.Answer = strings.TrimSpace(answer)
	return result, nil
}

// ChatResult is the response shape of the chat endpoint.
type ChatResult struct {
	Response       string `json:"response"`
	CollectionName string `json:"collection_name"`
	SourcesCount   int    `json:"sources_count"`
}

// Chat is a thin wrapper over Query returning the conversational shape.
func (s *RAGService) Chat(ctx context.Context, collectionID, message string, topK int) (*ChatResult, error) {
	r, err := s.Query(ctx, collectionID, message, topK)
	if err != nil {
		return nil, err
	}

	response := r.Answer
	if r.ErrorMessage != "" {
		response = "Error processing query: " + r.ErrorMessage
	}

	return &ChatResult{
		Response:       response,
		CollectionName: r.CollectionName,
		SourcesCount:   len(r.Sources),
	}, nil
}

// CollectionStatus reports whether a collection is ready for chat.
type CollectionStatus struct {
	CollectionName string `json:"collection_name"`
	IsIndexed      bool   `json:"is_indexed"`
	DocumentCount  int64  `json:"document_count"`
	ReadyForChat   bool   `json:"ready_for_chat"`
}

// Status resolves a collection's chat readiness without loading its index.
func (s *RAGService) Status(collectionID string) (*CollectionStatus, error) {
	coll, err := s.GetCollection(collectionID)
	if err != nil {
		return nil, err
	}
	indexed := s.cache.Exists(coll.ID)
	return &CollectionStatus{
		CollectionName: coll.Name,
		IsIndexed:      indexed,
		DocumentCount:  coll.DocumentCount,
		ReadyForChat:   indexed,
	}, nil
}

// buildPrompt assembles the synthesis prompt from retrieved context.
func buildPrompt(question string, sources []Source) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the context below. ")
	b.WriteString("If the context does not contain the answer, say so.\n\n")
	for i, src := range sources {
		fmt.Fprintf(&b, "Context %d (from %s):\n%s\n\n", i+1, src.DocumentName, src.Text)
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}
