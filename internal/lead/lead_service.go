package lead

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-crm/internal/events"
	"go-crm/internal/messaging/kafka"
	"go-crm/internal/shared/contextutil"
	"go-crm/internal/shared/counter"

	leaderrors "go-crm/internal/lead/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=lead_service.go -destination=mock/lead_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeadRequest) (LeadResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeadResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeadResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeadRequest) (LeadResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	RecalculateScore(ctx context.Context, companyID, id string) (LeadResponse, error)
	FindDuplicates(ctx context.Context, companyID string) ([]DuplicateGroupResponse, error)
	Merge(ctx context.Context, companyID string, req MergeLeadsRequest) (LeadResponse, error)
	ListScoringRules(ctx context.Context, companyID string) ([]ScoringRuleResponse, error)
	UpdateScoringRule(ctx context.Context, companyID, id string, req UpdateScoringRuleRequest) (ScoringRuleResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	scoring ScoringRepository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	scoring ScoringRepository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("lead.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lead.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		scoring: scoring,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateLeadRequest,
) (LeadResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create lead requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
	)

	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return LeadResponse{}, leaderrors.ErrInvalidFollowUpDate
	}

	rules, err := s.scoring.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("create lead load scoring rules failed", zap.Error(err))
		return LeadResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create lead begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeadResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.LeadNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, "lead_number")
		if err != nil {
			s.logger.Error("create lead generate number failed", zap.Error(err))
			return LeadResponse{}, err
		}
		req.LeadNumber = fmt.Sprintf("LEAD-%06d", nextVal)
	}

	l := &Lead{
		ID:              uuid.New(),
		CompanyID:       uuid.MustParse(companyID),
		LeadNumber:      req.LeadNumber,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceInterest: req.ServiceInterest,
		Source:          req.Source,
		Stage:           req.Stage,
		DealAmount:      req.DealAmount,
		FollowUpDate:    followUp,
		AssignedTo:      uuidPtr(req.AssignedTo),
	}
	applyScore(l, ComputeScore(*l, rules))

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create lead persist failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}

	if err := s.queueCaptured(ctx, tx, rid, "lead_captured", l); err != nil {
		return LeadResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create lead commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeadResponse{}, err
	}

	s.logger.Info("create lead success",
		zap.String("request_id", rid),
		zap.String("lead_id", l.ID.String()),
		zap.Int("score", l.Score),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeadResponse, error) {
	s.logger.Debug("get all leads requested", zap.String("company_id", companyID))
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all leads failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeadResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get lead by id failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateLeadRequest,
) (LeadResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update lead requested",
		zap.String("company_id", companyID),
		zap.String("lead_id", id),
	)

	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return LeadResponse{}, leaderrors.ErrInvalidFollowUpDate
	}

	rules, err := s.scoring.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("update lead load scoring rules failed", zap.Error(err))
		return LeadResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update lead begin tx failed", zap.Error(err))
		return LeadResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("update lead fetch existing failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}

	l.Name = req.Name
	l.Email = req.Email
	l.Phone = req.Phone
	l.ServiceInterest = req.ServiceInterest
	l.Source = req.Source
	l.Stage = req.Stage
	l.DealAmount = req.DealAmount
	l.FollowUpDate = followUp
	l.AssignedTo = uuidPtr(req.AssignedTo)
	applyScore(l, ComputeScore(*l, rules))

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update lead persist failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}

	if err := s.queueCaptured(ctx, tx, rid, "lead_updated", l); err != nil {
		return LeadResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update lead commit failed", zap.Error(err))
		return LeadResponse{}, err
	}

	s.logger.Info("update lead success", zap.String("lead_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	s.logger.Debug("delete lead requested",
		zap.String("company_id", companyID),
		zap.String("lead_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete lead begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete lead failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete lead commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete lead success", zap.String("lead_id", id))
	return nil
}

// RecalculateScore dipakai endpoint on-demand dan consumer lead.captured.
// Tidak mem-publish event baru supaya tidak terjadi loop.
func (s *service) RecalculateScore(ctx context.Context, companyID, id string) (LeadResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeadResponse{}, mapRepositoryError(err)
	}

	rules, err := s.scoring.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("recalculate score load rules failed", zap.Error(err))
		return LeadResponse{}, err
	}

	applyScore(l, ComputeScore(*l, rules))

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("recalculate score persist failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("lead score recalculated",
		zap.String("lead_id", id),
		zap.Int("score", l.Score),
		zap.String("priority", l.Priority),
	)
	return mapToResponse(*l), nil
}

func (s *service) FindDuplicates(ctx context.Context, companyID string) ([]DuplicateGroupResponse, error) {
	batch, err := s.repo.FindBatchByCompany(ctx, companyID, DedupeBatchLimit)
	if err != nil {
		s.logger.Error("find duplicates fetch batch failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	groups := DetectDuplicates(batch)
	resp := make([]DuplicateGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = DuplicateGroupResponse{
			Leads:      mapToListResponse(g.Leads),
			Signals:    g.Signals,
			Confidence: g.Confidence,
		}
	}
	return resp, nil
}

// Merge menyimpan primary, mengisi field kosongnya dari duplikat, lalu
// menghapus duplikat — semuanya dalam satu transaksi.
func (s *service) Merge(ctx context.Context, companyID string, req MergeLeadsRequest) (LeadResponse, error) {
	for _, dup := range req.DuplicateIDs {
		if dup == req.PrimaryID {
			return LeadResponse{}, leaderrors.ErrMergePrimaryInDuplicates
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("merge leads begin tx failed", zap.Error(err))
		return LeadResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	all := append([]string{req.PrimaryID}, req.DuplicateIDs...)
	rows, err := qtx.FindByIDsAndCompany(ctx, companyID, all)
	if err != nil {
		s.logger.Error("merge leads fetch failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}
	if len(rows) != len(all) {
		return LeadResponse{}, leaderrors.ErrMergeLeadMissing
	}

	var primary *Lead
	duplicates := make([]Lead, 0, len(req.DuplicateIDs))
	for i := range rows {
		if rows[i].ID.String() == req.PrimaryID {
			primary = &rows[i]
			continue
		}
		duplicates = append(duplicates, rows[i])
	}
	if primary == nil {
		return LeadResponse{}, leaderrors.ErrMergeLeadMissing
	}

	for _, dup := range duplicates {
		backfill(primary, dup)
	}

	if err := qtx.Update(ctx, primary); err != nil {
		s.logger.Error("merge leads update primary failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}
	if err := qtx.DeleteByIDs(ctx, companyID, req.DuplicateIDs); err != nil {
		s.logger.Error("merge leads delete duplicates failed", zap.Error(err))
		return LeadResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("merge leads commit failed", zap.Error(err))
		return LeadResponse{}, err
	}

	s.logger.Info("leads merged",
		zap.String("primary_id", req.PrimaryID),
		zap.Int("merged_count", len(req.DuplicateIDs)),
	)
	return mapToResponse(*primary), nil
}

func (s *service) ListScoringRules(ctx context.Context, companyID string) ([]ScoringRuleResponse, error) {
	rules, err := s.scoring.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list scoring rules failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ScoringRuleResponse, len(rules))
	for i, r := range rules {
		resp[i] = mapRuleToResponse(r)
	}
	return resp, nil
}

func (s *service) UpdateScoringRule(
	ctx context.Context,
	companyID, id string,
	req UpdateScoringRuleRequest,
) (ScoringRuleResponse, error) {
	rule, err := s.scoring.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScoringRuleResponse{}, leaderrors.ErrScoringRuleNotFound
		}
		return ScoringRuleResponse{}, err
	}

	rule.Category = req.Category
	rule.Weight = req.Weight
	rule.Enabled = req.Enabled
	rule.Conditions = make([]ScoringCondition, len(req.Conditions))
	for i, c := range req.Conditions {
		rule.Conditions[i] = ScoringCondition{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
			Points:   c.Points,
		}
	}

	if err := s.scoring.Update(ctx, rule); err != nil {
		s.logger.Error("update scoring rule persist failed", zap.Error(err))
		return ScoringRuleResponse{}, err
	}

	s.logger.Info("scoring rule updated",
		zap.String("rule_id", id),
		zap.String("category", rule.Category),
	)
	return mapRuleToResponse(*rule), nil
}

func (s *service) queueCaptured(ctx context.Context, tx *sql.Tx, rid, eventType string, l *Lead) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeadCapturedEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeadID:     l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lead event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "lead",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeadCapturedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("lead outbox persist failed",
			zap.String("lead_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func applyScore(l *Lead, result ScoreResult) {
	l.Score = result.Score
	l.Probability = result.Probability
	l.Priority = result.Priority
}

func backfill(primary *Lead, dup Lead) {
	if primary.Email == "" {
		primary.Email = dup.Email
	}
	if primary.Phone == "" {
		primary.Phone = dup.Phone
	}
	if primary.ServiceInterest == "" {
		primary.ServiceInterest = dup.ServiceInterest
	}
	if primary.Source == "" {
		primary.Source = dup.Source
	}
	if primary.Stage == "" {
		primary.Stage = dup.Stage
	}
	if primary.DealAmount == 0 {
		primary.DealAmount = dup.DealAmount
	}
	if primary.FollowUpDate == nil {
		primary.FollowUpDate = dup.FollowUpDate
	}
	if primary.AssignedTo == nil {
		primary.AssignedTo = dup.AssignedTo
	}
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(l Lead) LeadResponse {
	resp := LeadResponse{
		ID:              l.ID.String(),
		LeadNumber:      l.LeadNumber,
		Name:            l.Name,
		Email:           l.Email,
		Phone:           l.Phone,
		PhoneDigits:     NormalizePhoneDigits(l.Phone),
		ServiceInterest: l.ServiceInterest,
		Source:          l.Source,
		Stage:           l.Stage,
		IsWon:           StageIsWon(l.Stage),
		DealAmount:      l.DealAmount,
		Score:           l.Score,
		Probability:     l.Probability,
		Priority:        l.Priority,
		CompanyID:       l.CompanyID.String(),
	}
	if l.FollowUpDate != nil {
		resp.FollowUpDate = l.FollowUpDate.Format("2006-01-02")
	}
	if l.AssignedTo != nil {
		resp.AssignedTo = l.AssignedTo.String()
	}
	return resp
}

func mapToListResponse(rows []Lead) []LeadResponse {
	res := make([]LeadResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res
}

func mapRuleToResponse(r ScoringRule) ScoringRuleResponse {
	conds := make([]ScoringConditionPayload, len(r.Conditions))
	for i, c := range r.Conditions {
		conds[i] = ScoringConditionPayload{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
			Points:   c.Points,
		}
	}
	return ScoringRuleResponse{
		ID:         r.ID.String(),
		Category:   r.Category,
		Weight:     r.Weight,
		Enabled:    r.Enabled,
		Conditions: conds,
	}
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
