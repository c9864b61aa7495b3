package settings

import (
	"context"

	"go-crm/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	FindSetting(ctx context.Context, companyID string, key string) (*SystemSetting, error)
	UpsertSetting(ctx context.Context, setting *SystemSetting) error
	FindTablePreference(ctx context.Context, companyID string, employeeID uuid.UUID, tableKey string) (*TablePreference, error)
	UpsertTablePreference(ctx context.Context, pref *TablePreference) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSetting(ctx context.Context, companyID string, key string) (*SystemSetting, error) {
	var setting SystemSetting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&setting, "setting_key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) UpsertSetting(ctx context.Context, setting *SystemSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func (r *repository) FindTablePreference(ctx context.Context, companyID string, employeeID uuid.UUID, tableKey string) (*TablePreference, error) {
	var pref TablePreference
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND table_key = ?", employeeID, tableKey).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *repository) UpsertTablePreference(ctx context.Context, pref *TablePreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "table_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"visible_columns", "updated_at"}),
	}).Create(pref).Error
}
