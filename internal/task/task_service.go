package task

import (
	"context"
	"errors"
	"time"

	taskerrors "go-crm/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, companyID string) ([]TaskResponse, error)
	GetBoard(ctx context.Context, companyID string) ([]BoardColumn, error)
	GetByID(ctx context.Context, companyID, id string) (TaskResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateTaskRequest) (TaskResponse, error) {
	if req.Status == "" {
		req.Status = StatusPending
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !IsValidStatus(req.Status) {
		return TaskResponse{}, taskerrors.ErrInvalidTaskStatus
	}
	if !IsValidPriority(req.Priority) {
		return TaskResponse{}, taskerrors.ErrInvalidTaskPriority
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	t := &Task{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  uuidPtr(req.AssignedTo),
		DueDate:     dueDate,
	}
	if t.Status == StatusCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create task success", zap.String("task_id", t.ID.String()))
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]TaskResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all tasks failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

// GetBoard mengelompokkan task per status dalam urutan kolom kanban tetap.
// Kolom kosong tetap dikirim supaya board konsisten.
func (s *service) GetBoard(ctx context.Context, companyID string) ([]BoardColumn, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get task board failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	byStatus := make(map[string][]TaskResponse, len(BoardColumns))
	for _, row := range rows {
		byStatus[row.Status] = append(byStatus[row.Status], mapToResponse(row))
	}

	board := make([]BoardColumn, len(BoardColumns))
	for i, status := range BoardColumns {
		tasks := byStatus[status]
		if tasks == nil {
			tasks = []TaskResponse{}
		}
		board[i] = BoardColumn{Status: status, Tasks: tasks}
	}
	return board, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TaskResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateTaskRequest) (TaskResponse, error) {
	if !IsValidStatus(req.Status) {
		return TaskResponse{}, taskerrors.ErrInvalidTaskStatus
	}
	if !IsValidPriority(req.Priority) {
		return TaskResponse{}, taskerrors.ErrInvalidTaskPriority
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	wasCompleted := t.Status == StatusCompleted

	t.Title = req.Title
	t.Description = req.Description
	t.Status = req.Status
	t.Priority = req.Priority
	t.AssignedTo = uuidPtr(req.AssignedTo)
	t.DueDate = dueDate

	// completed_at distempel saat transisi ke completed, dihapus kalau
	// task dibuka kembali.
	if t.Status == StatusCompleted && !wasCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
	if t.Status != StatusCompleted {
		t.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update task success", zap.String("task_id", id))
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete task failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	s.logger.Info("delete task success", zap.String("task_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	return err
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

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CompanyID:   t.CompanyID.String(),
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = t.AssignedTo.String()
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format("2006-01-02")
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(rows []Task) []TaskResponse {
	res := make([]TaskResponse, len(rows))
	for i, t := range rows {
		res[i] = mapToResponse(t)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
