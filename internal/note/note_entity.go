package note

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminNote adalah catatan kecil yang ditempel per halaman dashboard,
// dikelompokkan lewat PageKey (misal "leads", "attendance").
type AdminNote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	PageKey     string    `gorm:"column:page_key;index"`
	Body        string
	Color       string
	AuthorID    *uuid.UUID `gorm:"type:uuid"`
	ExternalRef *string    `gorm:"column:external_ref"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (AdminNote) TableName() string {
	return "admin_notes"
}
