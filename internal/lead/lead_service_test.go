package lead_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-crm/internal/events"
	"go-crm/internal/lead"
	leaderrors "go-crm/internal/lead/errors"
	"go-crm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeadRepo struct {
	createFn      func(ctx context.Context, l *lead.Lead) error
	findAllFn     func(ctx context.Context, companyID string) ([]lead.Lead, error)
	findBatchFn   func(ctx context.Context, companyID string, limit int) ([]lead.Lead, error)
	findByIDFn    func(ctx context.Context, companyID, id string) (*lead.Lead, error)
	findByIDsFn   func(ctx context.Context, companyID string, ids []string) ([]lead.Lead, error)
	updateFn      func(ctx context.Context, l *lead.Lead) error
	deleteFn      func(ctx context.Context, companyID, id string) error
	deleteByIDsFn func(ctx context.Context, companyID string, ids []string) error
}

func (f *fakeLeadRepo) WithTx(tx *sql.Tx) lead.Repository { return f }
func (f *fakeLeadRepo) Create(ctx context.Context, l *lead.Lead) error {
	return f.createFn(ctx, l)
}
func (f *fakeLeadRepo) FindAllByCompany(ctx context.Context, companyID string) ([]lead.Lead, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeLeadRepo) FindBatchByCompany(ctx context.Context, companyID string, limit int) ([]lead.Lead, error) {
	return f.findBatchFn(ctx, companyID, limit)
}
func (f *fakeLeadRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*lead.Lead, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeLeadRepo) FindByIDsAndCompany(ctx context.Context, companyID string, ids []string) ([]lead.Lead, error) {
	return f.findByIDsFn(ctx, companyID, ids)
}
func (f *fakeLeadRepo) Update(ctx context.Context, l *lead.Lead) error {
	return f.updateFn(ctx, l)
}
func (f *fakeLeadRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}
func (f *fakeLeadRepo) DeleteByIDs(ctx context.Context, companyID string, ids []string) error {
	return f.deleteByIDsFn(ctx, companyID, ids)
}

type fakeScoringRepo struct {
	rules    []lead.ScoringRule
	updateFn func(ctx context.Context, rule *lead.ScoringRule) error
}

func (f *fakeScoringRepo) ListByCompany(ctx context.Context, companyID string) ([]lead.ScoringRule, error) {
	return f.rules, nil
}
func (f *fakeScoringRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*lead.ScoringRule, error) {
	for i := range f.rules {
		if f.rules[i].ID.String() == id {
			return &f.rules[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeScoringRepo) Update(ctx context.Context, rule *lead.ScoringRule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, rule)
	}
	return nil
}
func (f *fakeScoringRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return int64(len(f.rules)), nil
}
func (f *fakeScoringRepo) CreateBatch(ctx context.Context, rules []lead.ScoringRule) error {
	f.rules = append(f.rules, rules...)
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	return f.next, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeadService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	scoring := &fakeScoringRepo{rules: []lead.ScoringRule{
		{
			ID: uuid.New(), Category: "Contactability", Weight: 80, Enabled: true,
			Conditions: []lead.ScoringCondition{
				{Field: "email", Operator: "not_null", Points: 20},
			},
		},
	}}

	t.Run("success - number generated, score computed, event queued", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		var created *lead.Lead
		repo := &fakeLeadRepo{
			createFn: func(ctx context.Context, l *lead.Lead) error {
				created = l
				return nil
			},
		}
		outbox := &fakeOutbox{}
		svc := lead.NewService(db, repo, scoring, &fakeCounter{next: 7}, outbox)

		expectTx(t, sqlMock, true)

		resp, err := svc.Create(ctx, companyID, lead.CreateLeadRequest{
			Name:  "Acme Corp",
			Email: "contact@acme.com",
			Phone: "+91 98765-43210",
			Stage: "New",
		})

		assert.NoError(t, err)
		assert.Equal(t, "LEAD-000007", resp.LeadNumber)
		assert.Equal(t, 16, resp.Score) // 20 * 0.8
		assert.Equal(t, 16, resp.Probability)
		assert.Equal(t, lead.PriorityLow, resp.Priority)
		assert.Equal(t, "9876543210", resp.PhoneDigits)
		assert.NotNil(t, created)

		if assert.Len(t, outbox.created, 1) {
			evt := outbox.created[0]
			assert.Equal(t, events.LeadCapturedTopic, evt.Topic)
			assert.Equal(t, "lead_captured", evt.EventType)

			var payload events.LeadCapturedEvent
			assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
			assert.Equal(t, created.ID.String(), payload.LeadID)
			assert.Equal(t, companyID, payload.CompanyID)
		}
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid follow_up_date", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := lead.NewService(db, &fakeLeadRepo{}, scoring, &fakeCounter{}, nil)

		_, err := svc.Create(ctx, companyID, lead.CreateLeadRequest{
			Name:         "X",
			FollowUpDate: "31/12/2026",
		})
		assert.ErrorIs(t, err, leaderrors.ErrInvalidFollowUpDate)
	})
}

func TestLeadService_RecalculateScore(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("recomputes and persists without new events", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		existing := &lead.Lead{
			ID:        uuid.New(),
			CompanyID: uuid.MustParse(companyID),
			Name:      "Acme",
			Email:     "x@acme.com",
			Stage:     "Follow Up Required",
		}
		var updated *lead.Lead
		repo := &fakeLeadRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*lead.Lead, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, l *lead.Lead) error {
				updated = l
				return nil
			},
		}
		scoring := &fakeScoringRepo{rules: []lead.ScoringRule{
			{
				ID: uuid.New(), Category: "Engagement", Weight: 100, Enabled: true,
				Conditions: []lead.ScoringCondition{
					{Field: "stage", Operator: "contains", Value: "follow", Points: 45},
				},
			},
		}}
		outbox := &fakeOutbox{}
		svc := lead.NewService(db, repo, scoring, &fakeCounter{}, outbox)

		resp, err := svc.RecalculateScore(ctx, companyID, existing.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, 45, resp.Score)
		assert.Equal(t, lead.PriorityMedium, resp.Priority)
		assert.NotNil(t, updated)
		assert.Empty(t, outbox.created)
	})

	t.Run("lead gone maps to not found", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeLeadRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*lead.Lead, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := lead.NewService(db, repo, &fakeScoringRepo{}, &fakeCounter{}, nil)

		_, err := svc.RecalculateScore(ctx, companyID, uuid.New().String())
		assert.ErrorIs(t, err, leaderrors.ErrLeadNotFound)
	})
}

func TestLeadService_Merge(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	primaryID := uuid.New()
	dupID := uuid.New()

	t.Run("backfills primary and deletes duplicates in one tx", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		rows := []lead.Lead{
			{ID: primaryID, CompanyID: uuid.MustParse(companyID), Name: "Acme", Email: "", Phone: "111", DealAmount: 0},
			{ID: dupID, CompanyID: uuid.MustParse(companyID), Name: "Acme Corp", Email: "hi@acme.com", Phone: "222", DealAmount: 5000},
		}

		var updated *lead.Lead
		var deleted []string
		repo := &fakeLeadRepo{
			findByIDsFn: func(ctx context.Context, companyID string, ids []string) ([]lead.Lead, error) {
				return rows, nil
			},
			updateFn: func(ctx context.Context, l *lead.Lead) error {
				updated = l
				return nil
			},
			deleteByIDsFn: func(ctx context.Context, companyID string, ids []string) error {
				deleted = ids
				return nil
			},
		}
		svc := lead.NewService(db, repo, &fakeScoringRepo{}, &fakeCounter{}, nil)

		expectTx(t, sqlMock, true)

		resp, err := svc.Merge(ctx, companyID, lead.MergeLeadsRequest{
			PrimaryID:    primaryID.String(),
			DuplicateIDs: []string{dupID.String()},
		})

		assert.NoError(t, err)
		assert.Equal(t, primaryID.String(), resp.ID)
		assert.Equal(t, "hi@acme.com", resp.Email) // diisi dari duplikat
		assert.Equal(t, "111", resp.Phone)         // nilai primary dipertahankan
		assert.Equal(t, float64(5000), resp.DealAmount)
		assert.NotNil(t, updated)
		assert.Equal(t, []string{dupID.String()}, deleted)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("primary listed as duplicate rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := lead.NewService(db, &fakeLeadRepo{}, &fakeScoringRepo{}, &fakeCounter{}, nil)

		_, err := svc.Merge(ctx, companyID, lead.MergeLeadsRequest{
			PrimaryID:    primaryID.String(),
			DuplicateIDs: []string{primaryID.String()},
		})
		assert.ErrorIs(t, err, leaderrors.ErrMergePrimaryInDuplicates)
	})

	t.Run("missing lead rejected", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeLeadRepo{
			findByIDsFn: func(ctx context.Context, companyID string, ids []string) ([]lead.Lead, error) {
				return nil, nil
			},
		}
		svc := lead.NewService(db, repo, &fakeScoringRepo{}, &fakeCounter{}, nil)

		expectTx(t, sqlMock, false)

		_, err := svc.Merge(ctx, companyID, lead.MergeLeadsRequest{
			PrimaryID:    primaryID.String(),
			DuplicateIDs: []string{dupID.String()},
		})
		assert.ErrorIs(t, err, leaderrors.ErrMergeLeadMissing)
	})
}

func TestLeadService_UpdateScoringRule(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	ruleID := uuid.New()
	scoring := &fakeScoringRepo{rules: []lead.ScoringRule{
		{
			ID: ruleID, CompanyID: uuid.MustParse(companyID), Category: "Old", Weight: 50, Enabled: true,
			Conditions: []lead.ScoringCondition{
				{Field: "email", Operator: "not_null", Points: 10},
			},
		},
	}}

	t.Run("persists rule edits", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := lead.NewService(db, &fakeLeadRepo{}, scoring, &fakeCounter{}, nil)

		resp, err := svc.UpdateScoringRule(ctx, companyID, ruleID.String(), lead.UpdateScoringRuleRequest{
			Category: "Contactability",
			Weight:   90,
			Enabled:  false,
			Conditions: []lead.ScoringConditionPayload{
				{Field: "phone", Operator: "not_null", Points: 25},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Contactability", resp.Category)
		assert.Equal(t, 90, resp.Weight)
		assert.False(t, resp.Enabled)
		if assert.Len(t, resp.Conditions, 1) {
			assert.Equal(t, "phone", resp.Conditions[0].Field)
		}
	})

	t.Run("unknown rule maps to not found", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := lead.NewService(db, &fakeLeadRepo{}, scoring, &fakeCounter{}, nil)

		_, err := svc.UpdateScoringRule(ctx, companyID, uuid.New().String(), lead.UpdateScoringRuleRequest{
			Category: "X", Weight: 10, Conditions: []lead.ScoringConditionPayload{{Field: "email", Operator: "not_null"}},
		})
		assert.ErrorIs(t, err, leaderrors.ErrScoringRuleNotFound)
	})
}
