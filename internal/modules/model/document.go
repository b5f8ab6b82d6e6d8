package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document is an uploaded file. Content lives either inline in FileData or in
// the blob store under BlobKey.
type Document struct {
	ID       uint                         `gorm:"primaryKey" json:"id"`
	Name     string                       `gorm:"type:text;not null" json:"name"`
	Type     string                       `gorm:"type:text" json:"type"`
	Size     int64                        `json:"size"`
	FileData *string                      `gorm:"type:text" json:"-"`
	BlobKey  *string                      `gorm:"type:text" json:"-"`
	Tags     datatypes.JSONType[[]string] `json:"tags"`

	UploadedAt time.Time `gorm:"autoCreateTime;not null;index:ix_documents_uploaded_at" json:"uploaded_at"`
}

func (Document) TableName() string { return "documents" }
