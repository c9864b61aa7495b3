package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn        time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut       *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(30);not null"`
	WorkedHours    float64    `gorm:"column:worked_hours"`
	Notes          *string    `gorm:"column:notes;type:text"`
	// ExternalRef menyimpan id baris dari data store lama untuk data migrasi.
	ExternalRef *string        `gorm:"column:external_ref;type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee    *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	TechTeam bool      `gorm:"column:tech_team"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
