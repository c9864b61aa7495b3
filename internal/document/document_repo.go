package document

import (
	"context"
	"database/sql"

	"go-crm/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, doc *Document) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Document, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Document, error)
	Delete(ctx context.Context, companyID string, id string) error
	FindAssignments(ctx context.Context, documentID uuid.UUID) ([]DocumentAssignment, error)
	FindAssignment(ctx context.Context, documentID uuid.UUID, employeeID uuid.UUID) (*DocumentAssignment, error)
	FindAssignmentsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]DocumentAssignment, error)
	ReplaceAssignments(ctx context.Context, documentID uuid.UUID, assignments []DocumentAssignment) error
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

func (r *repository) Create(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Document, error) {
	var rows []Document
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&doc, "id = ?", id).Error
	return &doc, err
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Document{}, "id = ?", id).Error
}

func (r *repository) FindAssignments(ctx context.Context, documentID uuid.UUID) ([]DocumentAssignment, error) {
	var rows []DocumentAssignment
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAssignment(ctx context.Context, documentID uuid.UUID, employeeID uuid.UUID) (*DocumentAssignment, error) {
	var row DocumentAssignment
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND employee_id = ?", documentID, employeeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindAssignmentsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]DocumentAssignment, error) {
	var rows []DocumentAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Find(&rows).Error
	return rows, err
}

// ReplaceAssignments meng-upsert daftar assignment baru lalu menghapus
// assignment lama yang tidak disebut lagi.
func (r *repository) ReplaceAssignments(ctx context.Context, documentID uuid.UUID, assignments []DocumentAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(assignments))
		for i := range assignments {
			keep = append(keep, assignments[i].EmployeeID)
		}
		if len(assignments) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "document_id"}, {Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"can_view", "can_download", "updated_at"}),
			}).Create(&assignments).Error
			if err != nil {
				return err
			}
			return tx.Where("document_id = ? AND employee_id NOT IN ?", documentID, keep).
				Delete(&DocumentAssignment{}).Error
		}
		return tx.Where("document_id = ?", documentID).
			Delete(&DocumentAssignment{}).Error
	})
}
