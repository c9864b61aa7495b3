package document

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	documenterrors "go-crm/internal/document/errors"
	"go-crm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DownloadURLExpiry = 15 * time.Minute

// Viewer mendeskripsikan siapa yang sedang mengakses dokumen.
// CanManage true untuk role dengan permission document:manage,
// mereka melewati pemeriksaan assignment per dokumen.
type Viewer struct {
	EmployeeID string
	CanManage  bool
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, companyID string, viewer Viewer, req UploadDocumentRequest, filename string, contentType string, size int64, file io.Reader) (DocumentResponse, error)
	GetAll(ctx context.Context, companyID string, viewer Viewer) ([]DocumentResponse, error)
	GetByID(ctx context.Context, companyID string, viewer Viewer, id string) (DocumentDetailResponse, error)
	DownloadURL(ctx context.Context, companyID string, viewer Viewer, id string) (DownloadURLResponse, error)
	Delete(ctx context.Context, companyID string, viewer Viewer, id string) error
	UpdateAssignments(ctx context.Context, companyID string, id string, req UpdateAssignmentsRequest) ([]AssignmentResponse, error)
}

type service struct {
	repo    Repository
	storage ObjectStorage
	logger  *zap.Logger
}

func NewService(repo Repository, storage ObjectStorage, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		repo:    repo,
		storage: storage,
		logger:  l,
	}
}

// objectKeyFor membuat key berbasis tanggal supaya listing bucket tetap rapi
// dan nama file upload tidak bisa saling menimpa.
func objectKeyFor(filename string) string {
	return fmt.Sprintf("documents/%s/%s%s",
		time.Now().UTC().Format("2006/01/02"),
		uuid.New().String()[:8],
		filepath.Ext(filename),
	)
}

func (s *service) Upload(
	ctx context.Context,
	companyID string,
	viewer Viewer,
	req UploadDocumentRequest,
	filename string,
	contentType string,
	size int64,
	file io.Reader,
) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("upload document requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("company_id", companyID),
		zap.String("title", req.Title),
	)

	if s.storage == nil {
		return DocumentResponse{}, documenterrors.ErrStorageUnavailable
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := objectKeyFor(filename)
	if err := s.storage.Put(ctx, objectKey, file, size, contentType); err != nil {
		s.logger.Error("upload document storage put failed",
			zap.String("request_id", rid),
			zap.String("object_key", objectKey),
			zap.Error(err),
		)
		return DocumentResponse{}, documenterrors.ErrStorageUnavailable
	}

	doc := &Document{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		Title:       req.Title,
		Category:    req.Category,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if viewer.EmployeeID != "" {
		if uploaderID, err := uuid.Parse(viewer.EmployeeID); err == nil {
			doc.UploadedBy = &uploaderID
		}
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("upload document persist failed", zap.Error(err))
		// File yatim di storage dibersihkan supaya tidak menumpuk.
		if rmErr := s.storage.Remove(ctx, objectKey); rmErr != nil {
			s.logger.Warn("upload document orphan cleanup failed",
				zap.String("object_key", objectKey),
				zap.Error(rmErr),
			)
		}
		return DocumentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("upload document success",
		zap.String("request_id", rid),
		zap.String("document_id", doc.ID.String()),
	)
	return mapToResponse(*doc), nil
}

// GetAll mengembalikan semua dokumen untuk pengelola, dan hanya dokumen
// dengan assignment can_view untuk karyawan biasa.
func (s *service) GetAll(ctx context.Context, companyID string, viewer Viewer) ([]DocumentResponse, error) {
	docs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all documents failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if viewer.CanManage {
		return mapToListResponse(docs), nil
	}

	employeeID, err := uuid.Parse(viewer.EmployeeID)
	if err != nil {
		return []DocumentResponse{}, nil
	}

	assignments, err := s.repo.FindAssignmentsByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get viewer assignments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	viewable := make(map[uuid.UUID]bool, len(assignments))
	for _, a := range assignments {
		if a.CanView {
			viewable[a.DocumentID] = true
		}
	}

	visible := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		if viewable[doc.ID] {
			visible = append(visible, mapToResponse(doc))
		}
	}
	return visible, nil
}

func (s *service) GetByID(ctx context.Context, companyID string, viewer Viewer, id string) (DocumentDetailResponse, error) {
	doc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get document by id failed", zap.Error(err))
		return DocumentDetailResponse{}, mapRepositoryError(err)
	}

	if !viewer.CanManage {
		if err := s.requireAccess(ctx, doc.ID, viewer, accessView); err != nil {
			return DocumentDetailResponse{}, err
		}
	}

	detail := DocumentDetailResponse{
		DocumentResponse: mapToResponse(*doc),
		Assignments:      []AssignmentResponse{},
	}
	if viewer.CanManage {
		assignments, err := s.repo.FindAssignments(ctx, doc.ID)
		if err != nil {
			s.logger.Error("get document assignments failed", zap.Error(err))
			return DocumentDetailResponse{}, mapRepositoryError(err)
		}
		for _, a := range assignments {
			detail.Assignments = append(detail.Assignments, AssignmentResponse{
				EmployeeID:  a.EmployeeID.String(),
				CanView:     a.CanView,
				CanDownload: a.CanDownload,
			})
		}
	}
	return detail, nil
}

func (s *service) DownloadURL(ctx context.Context, companyID string, viewer Viewer, id string) (DownloadURLResponse, error) {
	doc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DownloadURLResponse{}, mapRepositoryError(err)
	}

	if !viewer.CanManage {
		if err := s.requireAccess(ctx, doc.ID, viewer, accessDownload); err != nil {
			return DownloadURLResponse{}, err
		}
	}

	if s.storage == nil {
		return DownloadURLResponse{}, documenterrors.ErrStorageUnavailable
	}
	url, err := s.storage.PresignGet(ctx, doc.ObjectKey, doc.Title+filepath.Ext(doc.ObjectKey), DownloadURLExpiry)
	if err != nil {
		s.logger.Error("presign download url failed",
			zap.String("document_id", id),
			zap.Error(err),
		)
		return DownloadURLResponse{}, documenterrors.ErrStorageUnavailable
	}

	s.logger.Info("document download url issued",
		zap.String("document_id", id),
		zap.String("employee_id", viewer.EmployeeID),
	)
	return DownloadURLResponse{
		URL:       url,
		ExpiresIn: int64(DownloadURLExpiry.Seconds()),
	}, nil
}

func (s *service) Delete(ctx context.Context, companyID string, viewer Viewer, id string) error {
	doc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete document failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.storage != nil {
		if err := s.storage.Remove(ctx, doc.ObjectKey); err != nil {
			// Baris DB sudah hilang, sisa file hanya dilaporkan.
			s.logger.Warn("delete document storage remove failed",
				zap.String("object_key", doc.ObjectKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("delete document success", zap.String("document_id", id))
	return nil
}

func (s *service) UpdateAssignments(ctx context.Context, companyID string, id string, req UpdateAssignmentsRequest) ([]AssignmentResponse, error) {
	doc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	assignments := make([]DocumentAssignment, 0, len(req.Assignments))
	resp := make([]AssignmentResponse, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		employeeID := uuid.MustParse(a.EmployeeID) // sudah divalidasi binding uuid
		assignments = append(assignments, DocumentAssignment{
			ID:          uuid.New(),
			DocumentID:  doc.ID,
			EmployeeID:  employeeID,
			CanView:     a.CanView,
			CanDownload: a.CanDownload,
		})
		resp = append(resp, AssignmentResponse{
			EmployeeID:  a.EmployeeID,
			CanView:     a.CanView,
			CanDownload: a.CanDownload,
		})
	}

	if err := s.repo.ReplaceAssignments(ctx, doc.ID, assignments); err != nil {
		s.logger.Error("update document assignments failed",
			zap.String("document_id", id),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("update document assignments success",
		zap.String("document_id", id),
		zap.Int("assignments", len(resp)),
	)
	return resp, nil
}

type accessKind int

const (
	accessView accessKind = iota
	accessDownload
)

func (s *service) requireAccess(ctx context.Context, documentID uuid.UUID, viewer Viewer, kind accessKind) error {
	employeeID, err := uuid.Parse(viewer.EmployeeID)
	if err != nil {
		return documenterrors.ErrDocumentAccessDenied
	}
	asg, err := s.repo.FindAssignment(ctx, documentID, employeeID)
	if err != nil {
		return documenterrors.ErrDocumentAccessDenied
	}
	switch kind {
	case accessDownload:
		if !asg.CanDownload {
			return documenterrors.ErrDownloadNotAllowed
		}
	default:
		if !asg.CanView {
			return documenterrors.ErrDocumentAccessDenied
		}
	}
	return nil
}

func mapToResponse(doc Document) DocumentResponse {
	resp := DocumentResponse{
		ID:          doc.ID.String(),
		Title:       doc.Title,
		Category:    doc.Category,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		CreatedAt:   doc.CreatedAt.UTC().Format(time.RFC3339),
		CompanyID:   doc.CompanyID.String(),
	}
	if doc.UploadedBy != nil {
		resp.UploadedBy = doc.UploadedBy.String()
	}
	return resp
}

func mapToListResponse(docs []Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = mapToResponse(d)
	}
	return res
}
