package models

import (
	"time"
)

// Document is a single uploaded file owned by exactly one Collection.
// Filename is generated server-side and never derived from user input, so
// malicious original names cannot collide or traverse paths.
type Document struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CollectionID string    `gorm:"index;size:36;not null" json:"collection_id"`
	Filename     string    `gorm:"uniqueIndex;size:255;not null" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	FilePath     string    `gorm:"size:500" json:"file_path"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	ContentHash  string    `gorm:"size:64;index" json:"content_hash"`
	Processed    bool      `gorm:"not null;default:false" json:"processed"`
	Indexed      bool      `gorm:"not null;default:false" json:"is_indexed"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}
