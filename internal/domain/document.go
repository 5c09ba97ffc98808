package domain

import "time"

type Document struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	PropertyID   int64     `gorm:"index;not null" json:"property_id"`
	UploadedByID int64     `gorm:"index;not null" json:"uploaded_by_id"`
	DocumentType string    `gorm:"type:varchar(64)" json:"document_type"`
	FileName     string    `gorm:"not null" json:"file_name"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	MimeType     string    `gorm:"type:varchar(64)" json:"mime_type"`
	Size         int64     `json:"size"`
	Compliance   bool      `gorm:"index" json:"compliance"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "documents" }
