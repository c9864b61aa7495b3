package employee

import (
	"fmt"
	"net/http"
	"time"

	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/export"
	"go-crm/internal/shared/response"
	"go-crm/internal/shared/tableview"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func tableColumns() []tableview.Column[EmployeeResponse] {
	return []tableview.Column[EmployeeResponse]{
		{ID: "name", Value: func(e EmployeeResponse) any { return e.FullName }, Searchable: true},
		{ID: "email", Value: func(e EmployeeResponse) any { return e.Email }, Searchable: true},
		{ID: "phone", Value: func(e EmployeeResponse) any { return e.Phone }, Searchable: true},
		{ID: "employee_number", Value: func(e EmployeeResponse) any { return e.EmployeeNumber }, Searchable: true},
		{ID: "status", Value: func(e EmployeeResponse) any { return e.Status }, Filterable: true},
		{ID: "employment_type", Value: func(e EmployeeResponse) any { return e.EmploymentType }, Filterable: true},
		{ID: "work_mode", Value: func(e EmployeeResponse) any { return e.WorkMode }, Filterable: true},
		{ID: "joining_date", Value: func(e EmployeeResponse) any { return e.JoiningDate }},
	}
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	h.logger.Debug("http create employee", zap.String("company_id", companyID))
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	h.logger.Debug("http get all employees", zap.String("company_id", companyID))

	resp, err := h.service.GetAll(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := tableview.QueryFromValues(c.Request.URL.Query(), "status", "employment_type", "work_mode")
	page := tableview.Apply(resp, tableColumns(), q)

	meta := response.NewPaginationMeta(int64(page.Total), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Rows, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.GetOptions(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Export mengunduh seluruh hasil view (setelah search/filter/sort) sebagai
// CSV atau XLSX. Pagination sengaja diabaikan.
func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := tableview.QueryFromValues(c.Request.URL.Query(), "status", "employment_type", "work_mode")
	rows := tableview.ApplyAll(resp, tableColumns(), q)

	headers := []string{"Employee Number", "Full Name", "Email", "Phone", "Employment Type", "Status", "Work Mode", "Joining Date"}
	records := make([][]string, len(rows))
	for i, e := range rows {
		records[i] = []string{e.EmployeeNumber, e.FullName, e.Email, e.Phone, e.EmploymentType, e.Status, e.WorkMode, e.JoiningDate}
	}

	filename := fmt.Sprintf("employees_%s", time.Now().Format("20060102"))
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.XLSX(c.Writer, "Employees", headers, records); err != nil {
			h.logger.Error("export employees xlsx failed", zap.Error(err))
		}
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Header("Content-Type", "text/csv")
		if err := export.CSV(c.Writer, headers, records); err != nil {
			h.logger.Error("export employees csv failed", zap.Error(err))
		}
	}
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")
	companyID := c.GetString("company_id")
	h.logger.Debug("http get employee by id",
		zap.String("company_id", companyID),
		zap.String("employee_id", targetID),
	)

	resp, err := h.service.GetByID(ctx, companyID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	companyID := c.GetString("company_id")
	h.logger.Debug("http update employee",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(ctx, companyID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	companyID := c.GetString("company_id")
	h.logger.Debug("http delete employee",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if err := h.service.Delete(ctx, companyID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
