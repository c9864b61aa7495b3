package document

import (
	"net/http"
	"strings"

	documenterrors "go-crm/internal/document/errors"
	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"
	"go-crm/internal/shared/tableview"

	"github.com/gin-gonic/gin"
)

// MaxUploadBytes membatasi ukuran file upload (25 MB).
const MaxUploadBytes = 25 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func viewerFrom(c *gin.Context) Viewer {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("user_id_validated")
	}
	role := strings.ToLower(strings.TrimSpace(c.GetString("role")))
	return Viewer{
		EmployeeID: employeeID,
		CanManage:  role == "admin" || role == "hr",
	}
}

func tableColumns() []tableview.Column[DocumentResponse] {
	return []tableview.Column[DocumentResponse]{
		{ID: "title", Value: func(d DocumentResponse) any { return d.Title }, Searchable: true},
		{ID: "category", Value: func(d DocumentResponse) any { return d.Category }, Filterable: true},
		{ID: "content_type", Value: func(d DocumentResponse) any { return d.ContentType }, Filterable: true},
		{ID: "uploaded_by", Value: func(d DocumentResponse) any { return d.UploadedBy }, Filterable: true},
		{ID: "size_bytes", Value: func(d DocumentResponse) any { return d.SizeBytes }},
		{ID: "created_at", Value: func(d DocumentResponse) any { return d.CreatedAt }},
	}
}

func (h *Handler) Upload(c *gin.Context) {
	companyID := c.GetString("company_id")
	viewer := viewerFrom(c)

	var req UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeServiceError(c, documenterrors.ErrFileRequired)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "INVALID_INPUT", "File too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.Upload(
		c.Request.Context(),
		companyID,
		viewer,
		req,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID, viewerFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	q := tableview.QueryFromValues(c.Request.URL.Query(), "category", "content_type", "uploaded_by")
	page := tableview.Apply(resp, tableColumns(), q)

	meta := response.NewPaginationMeta(int64(page.Total), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Rows, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, viewerFrom(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.DownloadURL(c.Request.Context(), companyID, viewerFrom(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), companyID, viewerFrom(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) UpdateAssignments(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	var req UpdateAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateAssignments(c.Request.Context(), companyID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
