package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Category  string
	// ObjectKey menunjuk lokasi file di object storage, bukan URL publik.
	ObjectKey   string `gorm:"column:object_key"`
	ContentType string
	SizeBytes   int64      `gorm:"column:size_bytes"`
	UploadedBy  *uuid.UUID `gorm:"type:uuid"`
	ExternalRef *string    `gorm:"column:external_ref"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentAssignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID  uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_document_assignment"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_document_assignment"`
	CanView     bool
	CanDownload bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DocumentAssignment) TableName() string {
	return "document_assignments"
}
