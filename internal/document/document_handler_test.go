package document_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-crm/internal/document"
	documenterrors "go-crm/internal/document/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDocumentService struct {
	UploadFn            func(ctx context.Context, companyID string, viewer document.Viewer, req document.UploadDocumentRequest, filename, contentType string, size int64, file io.Reader) (document.DocumentResponse, error)
	GetAllFn            func(ctx context.Context, companyID string, viewer document.Viewer) ([]document.DocumentResponse, error)
	GetByIDFn           func(ctx context.Context, companyID string, viewer document.Viewer, id string) (document.DocumentDetailResponse, error)
	DownloadURLFn       func(ctx context.Context, companyID string, viewer document.Viewer, id string) (document.DownloadURLResponse, error)
	DeleteFn            func(ctx context.Context, companyID string, viewer document.Viewer, id string) error
	UpdateAssignmentsFn func(ctx context.Context, companyID, id string, req document.UpdateAssignmentsRequest) ([]document.AssignmentResponse, error)
}

func (f *fakeDocumentService) Upload(ctx context.Context, companyID string, viewer document.Viewer, req document.UploadDocumentRequest, filename, contentType string, size int64, file io.Reader) (document.DocumentResponse, error) {
	return f.UploadFn(ctx, companyID, viewer, req, filename, contentType, size, file)
}
func (f *fakeDocumentService) GetAll(ctx context.Context, companyID string, viewer document.Viewer) ([]document.DocumentResponse, error) {
	return f.GetAllFn(ctx, companyID, viewer)
}
func (f *fakeDocumentService) GetByID(ctx context.Context, companyID string, viewer document.Viewer, id string) (document.DocumentDetailResponse, error) {
	return f.GetByIDFn(ctx, companyID, viewer, id)
}
func (f *fakeDocumentService) DownloadURL(ctx context.Context, companyID string, viewer document.Viewer, id string) (document.DownloadURLResponse, error) {
	return f.DownloadURLFn(ctx, companyID, viewer, id)
}
func (f *fakeDocumentService) Delete(ctx context.Context, companyID string, viewer document.Viewer, id string) error {
	return f.DeleteFn(ctx, companyID, viewer, id)
}
func (f *fakeDocumentService) UpdateAssignments(ctx context.Context, companyID, id string, req document.UpdateAssignmentsRequest) ([]document.AssignmentResponse, error) {
	return f.UpdateAssignmentsFn(ctx, companyID, id, req)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withIdentity(companyID, employeeID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	}
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = fw.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	companyID := uuid.New().String()
	emplID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeDocumentService{
			UploadFn: func(ctx context.Context, cid string, viewer document.Viewer, req document.UploadDocumentRequest, filename, contentType string, size int64, file io.Reader) (document.DocumentResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.True(t, viewer.CanManage)
				assert.Equal(t, "Handbook", req.Title)
				assert.Equal(t, "handbook.pdf", filename)
				content, _ := io.ReadAll(file)
				assert.Equal(t, "pdf-bytes", string(content))
				return document.DocumentResponse{ID: uuid.NewString(), Title: req.Title}, nil
			},
		}
		h := document.NewHandler(svc)
		r := setupRouter()
		r.POST("/documents", withIdentity(companyID, emplID, "admin"), h.Upload)

		body, contentType := multipartUpload(t, map[string]string{"title": "Handbook", "category": "HR"}, "handbook.pdf", "pdf-bytes")
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		h := document.NewHandler(&fakeDocumentService{})
		r := setupRouter()
		r.POST("/documents", withIdentity(companyID, emplID, "admin"), h.Upload)

		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		assert.NoError(t, mw.WriteField("title", "No file"))
		assert.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/documents", buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		h := document.NewHandler(&fakeDocumentService{})
		r := setupRouter()
		r.POST("/documents", withIdentity(companyID, emplID, "admin"), h.Upload)

		body, contentType := multipartUpload(t, nil, "x.txt", "x")
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentHandler_Download(t *testing.T) {
	companyID := uuid.New().String()
	emplID := uuid.New().String()
	docID := uuid.New().String()

	t.Run("returns presigned url", func(t *testing.T) {
		svc := &fakeDocumentService{
			DownloadURLFn: func(ctx context.Context, cid string, viewer document.Viewer, id string) (document.DownloadURLResponse, error) {
				assert.Equal(t, docID, id)
				assert.Equal(t, emplID, viewer.EmployeeID)
				assert.False(t, viewer.CanManage)
				return document.DownloadURLResponse{URL: "https://minio.local/x?sig=1", ExpiresIn: 900}, nil
			},
		}
		h := document.NewHandler(svc)
		r := setupRouter()
		r.GET("/documents/:id/download", withIdentity(companyID, emplID, "sales"), h.Download)

		req := httptest.NewRequest(http.MethodGet, "/documents/"+docID+"/download", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var data document.DownloadURLResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(900), data.ExpiresIn)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		svc := &fakeDocumentService{
			DownloadURLFn: func(ctx context.Context, cid string, viewer document.Viewer, id string) (document.DownloadURLResponse, error) {
				return document.DownloadURLResponse{}, documenterrors.ErrDownloadNotAllowed
			},
		}
		h := document.NewHandler(svc)
		r := setupRouter()
		r.GET("/documents/:id/download", withIdentity(companyID, emplID, "sales"), h.Download)

		req := httptest.NewRequest(http.MethodGet, "/documents/"+docID+"/download", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestDocumentHandler_UpdateAssignments(t *testing.T) {
	companyID := uuid.New().String()
	docID := uuid.New().String()
	emplID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeDocumentService{
			UpdateAssignmentsFn: func(ctx context.Context, cid, id string, req document.UpdateAssignmentsRequest) ([]document.AssignmentResponse, error) {
				assert.Equal(t, docID, id)
				if assert.Len(t, req.Assignments, 1) {
					assert.True(t, req.Assignments[0].CanView)
				}
				return []document.AssignmentResponse{{EmployeeID: emplID, CanView: true}}, nil
			},
		}
		h := document.NewHandler(svc)
		r := setupRouter()
		r.PUT("/documents/:id/assignments", withIdentity(companyID, emplID, "admin"), h.UpdateAssignments)

		body := `{"assignments":[{"employee_id":"` + emplID + `","can_view":true}]}`
		req := httptest.NewRequest(http.MethodPut, "/documents/"+docID+"/assignments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects non-uuid employee id", func(t *testing.T) {
		h := document.NewHandler(&fakeDocumentService{})
		r := setupRouter()
		r.PUT("/documents/:id/assignments", withIdentity(companyID, emplID, "admin"), h.UpdateAssignments)

		body := `{"assignments":[{"employee_id":"not-a-uuid","can_view":true}]}`
		req := httptest.NewRequest(http.MethodPut, "/documents/"+docID+"/assignments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
