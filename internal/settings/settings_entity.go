package settings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SystemSetting menyimpan dokumen JSON bebas per key per company,
// misalnya preferensi tampilan dashboard atau jam kerja default.
type SystemSetting struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_system_setting"`
	Key       string          `gorm:"column:setting_key;uniqueIndex:uq_system_setting"`
	Value     json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// TablePreference menyimpan kolom yang dipilih karyawan untuk satu tabel.
type TablePreference struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_table_preference"`
	TableKey       string    `gorm:"column:table_key;uniqueIndex:uq_table_preference"`
	VisibleColumns []string  `gorm:"serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TablePreference) TableName() string {
	return "table_preferences"
}
