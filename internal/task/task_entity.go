package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// BoardColumns menentukan urutan kolom kanban yang stabil.
var BoardColumns = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);default:pending"`
	Priority    string     `gorm:"type:varchar(10);default:medium"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	DueDate     *time.Time
	CompletedAt *time.Time
	// ExternalRef menyimpan id baris dari data store lama untuk data migrasi.
	ExternalRef *string `gorm:"column:external_ref"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}
