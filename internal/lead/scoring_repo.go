package lead

import (
	"context"
	"time"

	"go-crm/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoringCondition struct {
	Field    string  `json:"field"`
	Operator string  `json:"operator"`
	Value    string  `json:"value"`
	Points   float64 `json:"points"`
}

type ScoringRule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	Category   string
	Weight     int
	Enabled    bool
	Conditions []ScoringCondition `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ScoringRule) TableName() string {
	return "lead_scoring_rules"
}

type ScoringRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]ScoringRule, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*ScoringRule, error)
	Update(ctx context.Context, rule *ScoringRule) error
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	CreateBatch(ctx context.Context, rules []ScoringRule) error
}

type scoringRepository struct {
	db *gorm.DB
}

func NewScoringRepository(db *gorm.DB) ScoringRepository {
	return &scoringRepository{db: db}
}

func (r *scoringRepository) ListByCompany(ctx context.Context, companyID string) ([]ScoringRule, error) {
	var rules []ScoringRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("category ASC").
		Find(&rules).Error
	return rules, err
}

func (r *scoringRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*ScoringRule, error) {
	var rule ScoringRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rule, "id = ?", id).Error
	return &rule, err
}

func (r *scoringRepository) Update(ctx context.Context, rule *ScoringRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *scoringRepository) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScoringRule{}).
		Scopes(tenant.Scope(companyID)).
		Count(&count).Error
	return count, err
}

func (r *scoringRepository) CreateBatch(ctx context.Context, rules []ScoringRule) error {
	return r.db.WithContext(ctx).Create(&rules).Error
}

// defaultScoringRules adalah bundle awal per company. Rule tetap bisa
// diedit lewat admin settings; perubahan tersimpan permanen.
func defaultScoringRules(companyID uuid.UUID) []ScoringRule {
	return []ScoringRule{
		{
			ID:        uuid.New(),
			CompanyID: companyID,
			Category:  "Contactability",
			Weight:    80,
			Enabled:   true,
			Conditions: []ScoringCondition{
				{Field: "email", Operator: "not_null", Points: 20},
				{Field: "phone", Operator: "not_null", Points: 15},
			},
		},
		{
			ID:        uuid.New(),
			CompanyID: companyID,
			Category:  "Engagement",
			Weight:    100,
			Enabled:   true,
			Conditions: []ScoringCondition{
				{Field: "stage", Operator: "contains", Value: "follow", Points: 25},
				{Field: "stage", Operator: "equals", Value: "converted", Points: 40},
			},
		},
		{
			ID:        uuid.New(),
			CompanyID: companyID,
			Category:  "Deal Size",
			Weight:    60,
			Enabled:   true,
			Conditions: []ScoringCondition{
				{Field: "deal_amount", Operator: "greater_than", Value: "10000", Points: 15},
				{Field: "deal_amount", Operator: "greater_than", Value: "50000", Points: 30},
			},
		},
		{
			ID:        uuid.New(),
			CompanyID: companyID,
			Category:  "Source Quality",
			Weight:    50,
			Enabled:   true,
			Conditions: []ScoringCondition{
				{Field: "source", Operator: "equals", Value: "Referral", Points: 30},
				{Field: "source", Operator: "equals", Value: "Website", Points: 15},
			},
		},
	}
}

// SeedDefaultScoringRules idempotent: company yang sudah punya rule
// tidak disentuh.
func SeedDefaultScoringRules(ctx context.Context, repo ScoringRepository, companyID string) error {
	count, err := repo.CountByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return repo.CreateBatch(ctx, defaultScoringRules(uuid.MustParse(companyID)))
}
