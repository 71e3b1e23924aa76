// ingest.go
//
// Ingestion pipeline: stored file -> extracted text -> index insert -> flags.

package services

import (
	"context"
	"log"

	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/types"
)

// FileOutcome reports ingestion of a single document.
type FileOutcome struct {
	DocumentID   string `json:"document_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Ok           bool   `json:"ok"`
	Error        string `json:"error,omitempty"`
}

// IngestResult reports a whole ingestion run over a collection.
type IngestResult struct {
	CollectionID   string        `json:"collection_id"`
	CollectionName string        `json:"collection_name"`
	Succeeded      int           `json:"succeeded"`
	Failed         int           `json:"failed"`
	Skipped        int           `json:"skipped"`
	DocumentCount  int64         `json:"document_count"`
	Files          []FileOutcome `json:"files"`
}

// BuildIndex ingests every stored document of the collection that has not
// been processed yet. Each file is extracted and inserted into the index
// individually; one bad file is recorded and the batch continues. The
// collection's document_count is recomputed afterwards over successfully
// processed documents so partial failures never inflate it.
func (s *RAGService) BuildIndex(ctx context.Context, collectionID string) (*IngestResult, error) {
	coll, err := s.GetCollection(collectionID)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	if err := s.db.Where("collection_id = ?", coll.ID).Order("created_at").Find(&docs).Error; err != nil {
		return nil, types.Internal(err, "failed to list documents")
	}
	if len(docs) == 0 {
		return nil, types.Ingestion(nil, "collection '%s' has no documents to ingest", coll.Name)
	}

	result := &IngestResult{CollectionID: coll.ID, CollectionName: coll.Name}

	for _, doc := range docs {
		if doc.Processed {
			result.Skipped++
			continue
		}

		outcome := FileOutcome{DocumentID: doc.ID, Filename: doc.Filename, OriginalName: doc.OriginalName}

		text, err := rag.ExtractText(doc.FilePath)
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, outcome)
			log.Printf("Ingestion failure for %s in collection %s: %v", doc.OriginalName, coll.Name, err)
			continue
		}

		raw := rag.RawDocument{ID: doc.ID, Name: doc.OriginalName, Text: text}
		if _, err := s.cache.BuildOrUpdate(ctx, coll.ID, []rag.RawDocument{raw}); err != nil {
			outcome.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, outcome)
			log.Printf("Index insert failure for %s in collection %s: %v", doc.OriginalName, coll.Name, err)
			continue
		}

		if err := s.db.Model(&models.Document{}).Where("id = ?", doc.ID).
			Updates(map[string]interface{}{"processed": true, "indexed": true}).Error; err != nil {
			outcome.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, outcome)
			continue
		}

		outcome.Ok = true
		result.Succeeded++
		result.Files = append(result.Files, outcome)
	}

	count, err := s.recountDocuments(coll.ID, true)
	if err != nil {
		return nil, err
	}
	result.DocumentCount = count

	if result.Succeeded == 0 && result.Skipped == 0 {
		return result, types.Ingestion(nil, "ingestion failed for all %d documents", result.Failed)
	}

	return result, nil
}
