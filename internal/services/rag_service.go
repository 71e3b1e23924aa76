// rag_service.go
//
// Collection lifecycle: creation, listing, upload, cascading delete. The
// service object is constructed once at startup and handed to the HTTP layer;
// there is no package-level instance.

package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/storage"
	"github.com/docuchat/docuchat/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RAGService coordinates the metadata store, the content store and the index
// cache so the three stay consistent across the collection lifecycle.
type RAGService struct {
	db        *gorm.DB
	cfg       *config.Config
	content   *storage.ContentStore
	cache     *rag.Cache
	embedder  rag.Embedder
	generator rag.Generator
}

// NewRAGService wires the service from its collaborators.
func NewRAGService(db *gorm.DB, cfg *config.Config, content *storage.ContentStore, cache *rag.Cache, embedder rag.Embedder, generator rag.Generator) *RAGService {
	return &RAGService{
		db:        db,
		cfg:       cfg,
		content:   content,
		cache:     cache,
		embedder:  embedder,
		generator: generator,
	}
}

// CreateCollection creates a named collection. Name collisions fail before
// any row or directory is created.
func (s *RAGService) CreateCollection(name, description string, metadata map[string]interface{}) (*models.Collection, error) {
	if name == "" {
		return nil, types.Validation("collection name is required")
	}

	var existing models.Collection
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, types.DuplicateName("collection '%s' already exists", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Internal(err, "failed to check collection name")
	}

	coll := models.Collection{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		Metadata:    models.JSONFromMap(metadata),
	}
	if err := s.db.Create(&coll).Error; err != nil {
		// Unique index closes the race between the pre-check and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.DuplicateName("collection '%s' already exists", name)
		}
		return nil, types.Internal(err, "failed to create collection")
	}

	if err := s.content.EnsureDir(coll.ID); err != nil {
		log.Printf("Failed to create content directory for collection %s: %v", coll.ID, err)
	}

	return &coll, nil
}

// ListCollections returns all active collections.
func (s *RAGService) ListCollections() ([]models.Collection, error) {
	var colls []models.Collection
	if err := s.db.Where("is_active = ?", true).Order("created_at").Find(&colls).Error; err != nil {
		return nil, types.Internal(err, "failed to list collections")
	}
	return colls, nil
}

// GetCollection resolves an active collection by id.
func (s *RAGService) GetCollection(id string) (*models.Collection, error) {
	var coll models.Collection
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&coll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("collection '%s' not found", id)
	}
	if err != nil {
		return nil, types.Internal(err, "failed to load collection")
	}
	return &coll, nil
}

// DeleteCollection removes a collection and everything derived from it: the
// content subtree, the index snapshot with its cache entry, and finally the
// metadata rows. Filesystem steps are idempotent and run before the metadata
// delete, so a partially failed delete can simply be retried.
func (s *RAGService) DeleteCollection(id string) error {
	coll, err := s.GetCollection(id)
	if err != nil {
		return err
	}

	if err := s.content.Remove(coll.ID); err != nil {
		return types.Internal(err, "failed to remove stored content for collection '%s'", coll.Name)
	}

	if err := s.cache.Evict(coll.ID); err != nil {
		return types.Internal(err, "failed to remove index for collection '%s'", coll.Name)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", coll.ID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Collection{}, "id = ?", coll.ID).Error
	})
	if err != nil {
		return types.Internal(err, "failed to delete collection '%s'", coll.Name)
	}

	return nil
}

// UploadFile is one incoming multipart file.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadOutcome reports the result of storing one uploaded file.
type UploadOutcome struct {
	OriginalName string `json:"original_name"`
	Filename     string `json:"filename,omitempty"`
	DocumentID   string `json:"document_id,omitempty"`
	Ok           bool   `json:"ok"`
	Error        string `json:"error,omitempty"`
}

// UploadResult reports a whole upload batch.
type UploadResult struct {
	CollectionID   string          `json:"collection_id"`
	CollectionName string          `json:"collection_name"`
	Uploaded       int             `json:"uploaded"`
	Failed         int             `json:"failed"`
	DocumentCount  int64           `json:"document_count"`
	Files          []UploadOutcome `json:"files"`
}

// UploadDocuments stores raw files and their metadata rows. A failing file is
// recorded and skipped; the batch continues. The collection's document_count
// is recomputed with an exact count, never a running increment.
func (s *RAGService) UploadDocuments(collectionID string, files []UploadFile) (*UploadResult, error) {
	coll, err := s.GetCollection(collectionID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, types.Validation("no files provided")
	}

	result := &UploadResult{CollectionID: coll.ID, CollectionName: coll.Name}

	for _, f := range files {
		outcome := UploadOutcome{OriginalName: f.Name}

		sum := sha256.Sum256(f.Data)
		storedPath, filename, err := s.content.Store(coll.ID, f.Name, f.Data)
		if err != nil {
			outcome.Error = fmt.Sprintf("failed to store file: %v", err)
			result.Failed++
			result.Files = append(result.Files, outcome)
			continue
		}

		doc := models.Document{
			ID:           uuid.NewString(),
			CollectionID: coll.ID,
			Filename:     filename,
			OriginalName: f.Name,
			FilePath:     storedPath,
			FileSize:     int64(len(f.Data)),
			ContentType:  f.ContentType,
			ContentHash:  hex.EncodeToString(sum[:]),
		}
		if err := s.db.Create(&doc).Error; err != nil {
			// Undo the stored file so content and metadata do not diverge
			_ = s.content.Delete(coll.ID, filename)
			outcome.Error = fmt.Sprintf("failed to record document: %v", err)
			result.Failed++
			result.Files = append(result.Files, outcome)
			continue
		}

		outcome.Ok = true
		outcome.Filename = filename
		outcome.DocumentID = doc.ID
		result.Uploaded++
		result.Files = append(result.Files, outcome)
	}

	count, err := s.recountDocuments(coll.ID, false)
	if err != nil {
		return nil, err
	}
	result.DocumentCount = count

	return result, nil
}

// recountDocuments recomputes and stores the collection's document_count.
// With processedOnly the count covers only documents that made it into the
// index, so partial ingestion failures never inflate it.
func (s *RAGService) recountDocuments(collectionID string, processedOnly bool) (int64, error) {
	var count int64
	query := s.db.Model(&models.Document{}).Where("collection_id = ?", collectionID)
	if processedOnly {
		query = query.Where("processed = ?", true)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, types.Internal(err, "failed to count documents")
	}
	if err := s.db.Model(&models.Collection{}).Where("id = ?", collectionID).
		Update("document_count", count).Error; err != nil {
		return 0, types.Internal(err, "failed to update document count")
	}
	return count, nil
}
