package note

import (
	"context"
	"errors"
	"time"

	noteerrors "go-crm/internal/note/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=note_service.go -destination=mock/note_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, authorID string, req CreateNoteRequest) (NoteResponse, error)
	GetByPageKey(ctx context.Context, companyID string, pageKey string) ([]NoteResponse, error)
	Update(ctx context.Context, companyID string, id string, req UpdateNoteRequest) (NoteResponse, error)
	Delete(ctx context.Context, companyID string, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("note.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("note.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, authorID string, req CreateNoteRequest) (NoteResponse, error) {
	n := &AdminNote{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		PageKey:   req.PageKey,
		Body:      req.Body,
		Color:     req.Color,
	}
	if authorID != "" {
		if aid, err := uuid.Parse(authorID); err == nil {
			n.AuthorID = &aid
		}
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create note failed",
			zap.String("page_key", req.PageKey),
			zap.Error(err),
		)
		return NoteResponse{}, err
	}

	s.logger.Info("create note success",
		zap.String("note_id", n.ID.String()),
		zap.String("page_key", n.PageKey),
	)
	return mapToResponse(*n), nil
}

func (s *service) GetByPageKey(ctx context.Context, companyID string, pageKey string) ([]NoteResponse, error) {
	if pageKey == "" {
		return nil, noteerrors.ErrPageKeyRequired
	}
	notes, err := s.repo.FindByPageKey(ctx, companyID, pageKey)
	if err != nil {
		s.logger.Error("get notes failed", zap.String("page_key", pageKey), zap.Error(err))
		return nil, err
	}

	res := make([]NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, companyID string, id string, req UpdateNoteRequest) (NoteResponse, error) {
	n, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NoteResponse{}, noteerrors.ErrNoteNotFound
		}
		return NoteResponse{}, err
	}

	n.Body = req.Body
	n.Color = req.Color

	if err := s.repo.Update(ctx, n); err != nil {
		s.logger.Error("update note failed", zap.String("note_id", id), zap.Error(err))
		return NoteResponse{}, err
	}

	s.logger.Info("update note success", zap.String("note_id", id))
	return mapToResponse(*n), nil
}

func (s *service) Delete(ctx context.Context, companyID string, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noteerrors.ErrNoteNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete note failed", zap.String("note_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete note success", zap.String("note_id", id))
	return nil
}

func mapToResponse(n AdminNote) NoteResponse {
	resp := NoteResponse{
		ID:        n.ID.String(),
		PageKey:   n.PageKey,
		Body:      n.Body,
		Color:     n.Color,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if n.AuthorID != nil {
		resp.AuthorID = n.AuthorID.String()
	}
	return resp
}
