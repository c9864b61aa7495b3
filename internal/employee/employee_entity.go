package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "Active"
	StatusOnboarding = "Onboarding"
	StatusResigned   = "Resigned"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusOnboarding, StatusResigned:
		return true
	default:
		return false
	}
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber string    `gorm:"uniqueIndex:uq_employee_number"`
	FullName       string
	Email          string `gorm:"uniqueIndex:uq_employee_email"`
	Phone          string
	EmploymentType string
	Status         string `gorm:"default:Onboarding"`
	WorkMode       string
	TechTeam       bool `gorm:"column:tech_team"` // menentukan jam masuk kebijakan absensi
	JoiningDate    time.Time
	// ExternalRef menyimpan id baris dari data store lama
	// (kolom whalesync_postgres_id) untuk data hasil migrasi.
	ExternalRef *string `gorm:"column:external_ref"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
