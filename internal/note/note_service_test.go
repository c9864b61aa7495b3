package note_test

import (
	"context"
	"errors"
	"testing"

	"go-crm/internal/note"
	noteerrors "go-crm/internal/note/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNoteRepo struct {
	createFn     func(ctx context.Context, n *note.AdminNote) error
	findByPageFn func(ctx context.Context, companyID, pageKey string) ([]note.AdminNote, error)
	findByIDFn   func(ctx context.Context, companyID, id string) (*note.AdminNote, error)
	updateFn     func(ctx context.Context, n *note.AdminNote) error
	deleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeNoteRepo) Create(ctx context.Context, n *note.AdminNote) error {
	return f.createFn(ctx, n)
}
func (f *fakeNoteRepo) FindByPageKey(ctx context.Context, companyID, pageKey string) ([]note.AdminNote, error) {
	return f.findByPageFn(ctx, companyID, pageKey)
}
func (f *fakeNoteRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*note.AdminNote, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeNoteRepo) Update(ctx context.Context, n *note.AdminNote) error {
	return f.updateFn(ctx, n)
}
func (f *fakeNoteRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	authorID := uuid.New().String()

	t.Run("persists note with author", func(t *testing.T) {
		var created *note.AdminNote
		repo := &fakeNoteRepo{
			createFn: func(ctx context.Context, n *note.AdminNote) error {
				created = n
				return nil
			},
		}
		svc := note.NewService(repo)

		resp, err := svc.Create(ctx, companyID, authorID, note.CreateNoteRequest{
			PageKey: "leads",
			Body:    "Follow up PT Nusantara before Friday",
			Color:   "yellow",
		})

		assert.NoError(t, err)
		assert.Equal(t, "leads", resp.PageKey)
		assert.Equal(t, authorID, resp.AuthorID)
		if assert.NotNil(t, created) {
			assert.Equal(t, companyID, created.CompanyID.String())
		}
	})

	t.Run("repository failure is surfaced, not swallowed", func(t *testing.T) {
		repo := &fakeNoteRepo{
			createFn: func(ctx context.Context, n *note.AdminNote) error {
				return errors.New("connection refused")
			},
		}
		svc := note.NewService(repo)

		_, err := svc.Create(ctx, companyID, authorID, note.CreateNoteRequest{
			PageKey: "leads",
			Body:    "x",
		})
		assert.Error(t, err)
	})
}

func TestNoteService_GetByPageKey(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("empty page_key rejected", func(t *testing.T) {
		svc := note.NewService(&fakeNoteRepo{})
		_, err := svc.GetByPageKey(ctx, companyID, "")
		assert.ErrorIs(t, err, noteerrors.ErrPageKeyRequired)
	})

	t.Run("returns notes for page", func(t *testing.T) {
		repo := &fakeNoteRepo{
			findByPageFn: func(ctx context.Context, cid, pageKey string) ([]note.AdminNote, error) {
				assert.Equal(t, "attendance", pageKey)
				return []note.AdminNote{
					{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), PageKey: "attendance", Body: "Check late marks"},
				}, nil
			},
		}
		svc := note.NewService(repo)

		resp, err := svc.GetByPageKey(ctx, companyID, "attendance")
		assert.NoError(t, err)
		if assert.Len(t, resp, 1) {
			assert.Equal(t, "Check late marks", resp[0].Body)
		}
	})
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	noteID := uuid.New()

	t.Run("updates body and color", func(t *testing.T) {
		existing := &note.AdminNote{
			ID:        noteID,
			CompanyID: uuid.MustParse(companyID),
			PageKey:   "leads",
			Body:      "old",
			Color:     "yellow",
		}
		repo := &fakeNoteRepo{
			findByIDFn: func(ctx context.Context, cid, id string) (*note.AdminNote, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, n *note.AdminNote) error { return nil },
		}
		svc := note.NewService(repo)

		resp, err := svc.Update(ctx, companyID, noteID.String(), note.UpdateNoteRequest{
			Body:  "new body",
			Color: "green",
		})
		assert.NoError(t, err)
		assert.Equal(t, "new body", resp.Body)
		assert.Equal(t, "green", resp.Color)
	})

	t.Run("missing note maps to not found", func(t *testing.T) {
		repo := &fakeNoteRepo{
			findByIDFn: func(ctx context.Context, cid, id string) (*note.AdminNote, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := note.NewService(repo)

		_, err := svc.Update(ctx, companyID, uuid.NewString(), note.UpdateNoteRequest{Body: "x"})
		assert.ErrorIs(t, err, noteerrors.ErrNoteNotFound)
	})
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	noteID := uuid.New()

	t.Run("deletes existing note", func(t *testing.T) {
		deleted := false
		repo := &fakeNoteRepo{
			findByIDFn: func(ctx context.Context, cid, id string) (*note.AdminNote, error) {
				return &note.AdminNote{ID: noteID, CompanyID: uuid.MustParse(companyID)}, nil
			},
			deleteFn: func(ctx context.Context, cid, id string) error {
				deleted = true
				return nil
			},
		}
		svc := note.NewService(repo)

		assert.NoError(t, svc.Delete(ctx, companyID, noteID.String()))
		assert.True(t, deleted)
	})

	t.Run("missing note maps to not found", func(t *testing.T) {
		repo := &fakeNoteRepo{
			findByIDFn: func(ctx context.Context, cid, id string) (*note.AdminNote, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := note.NewService(repo)

		assert.ErrorIs(t, svc.Delete(ctx, companyID, uuid.NewString()), noteerrors.ErrNoteNotFound)
	})
}
