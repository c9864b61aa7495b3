package lead

import (
	"context"
	"database/sql"

	"go-crm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=lead_repo.go -destination=mock/lead_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Lead) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Lead, error)
	FindBatchByCompany(ctx context.Context, companyID string, limit int) ([]Lead, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Lead, error)
	FindByIDsAndCompany(ctx context.Context, companyID string, ids []string) ([]Lead, error)
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, companyID string, id string) error
	DeleteByIDs(ctx context.Context, companyID string, ids []string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Lead, error) {
	var rows []Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&rows).Error
	return rows, err
}

// FindBatchByCompany mengambil batch terbaru untuk scan duplikat.
func (r *repository) FindBatchByCompany(ctx context.Context, companyID string, limit int) ([]Lead, error) {
	var rows []Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDsAndCompany(ctx context.Context, companyID string, ids []string) ([]Lead, error) {
	var rows []Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Lead{}, "id = ?", id).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, companyID string, ids []string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Delete(&Lead{}).Error
}
