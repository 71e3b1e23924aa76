package models

import (
	"time"
)

// Collection is a named, independent knowledge base grouping documents and
// one derived retrieval index.
type Collection struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	DocumentCount int64     `gorm:"not null;default:0" json:"document_count"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	Metadata      JSON      `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Documents []Document `gorm:"foreignKey:CollectionID" json:"-"`
}

// TableName overrides the table name for Collection
func (Collection) TableName() string {
	return "document_collections"
}
