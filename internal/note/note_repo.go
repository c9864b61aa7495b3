package note

import (
	"context"

	"go-crm/internal/tenant"

	"gorm.io/gorm"
)

// Repository adalah satu-satunya jalur persistensi catatan.
// Tidak ada fallback penyimpanan lokal; error repository harus
// dipropagasikan sampai ke client.
//
//go:generate mockgen -source=note_repo.go -destination=mock/note_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *AdminNote) error
	FindByPageKey(ctx context.Context, companyID string, pageKey string) ([]AdminNote, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*AdminNote, error)
	Update(ctx context.Context, n *AdminNote) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *AdminNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByPageKey(ctx context.Context, companyID string, pageKey string) ([]AdminNote, error) {
	var rows []AdminNote
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("page_key = ?", pageKey).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*AdminNote, error) {
	var n AdminNote
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) Update(ctx context.Context, n *AdminNote) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&AdminNote{}, "id = ?", id).Error
}
