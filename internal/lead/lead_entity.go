package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Stage sengaja free text, bukan enum. Perbandingan terhadap nilai
// "menang" selalu case-insensitive.
var wonStages = []string{"won", "converted"}

func StageIsWon(stage string) bool {
	s := strings.ToLower(strings.TrimSpace(stage))
	for _, w := range wonStages {
		if s == w {
			return true
		}
	}
	return false
}

type Lead struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;index"`
	LeadNumber      string    `gorm:"uniqueIndex:uq_lead_number"`
	Name            string
	Email           string
	Phone           string
	ServiceInterest string
	Source          string
	Stage           string
	DealAmount      float64
	FollowUpDate    *time.Time
	AssignedTo      *uuid.UUID `gorm:"type:uuid"`
	Score           int
	Probability     int
	Priority        string
	// ExternalRef menyimpan id baris dari data store lama
	// (kolom whalesync_postgres_id) untuk data hasil migrasi.
	ExternalRef *string `gorm:"column:external_ref"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Lead) TableName() string {
	return "leads"
}

// NormalizePhoneDigits membuang semua karakter non-digit dan mengambil
// maksimal 10 digit terakhir, supaya "+91 98765-43210" dan "9876543210"
// menghasilkan nilai yang sama.
func NormalizePhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
