package lead

import (
	"fmt"
	"net/http"
	"strconv"
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
	l := zap.L().Named("lead.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lead.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("lead request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func tableColumns() []tableview.Column[LeadResponse] {
	return []tableview.Column[LeadResponse]{
		{ID: "name", Value: func(l LeadResponse) any { return l.Name }, Searchable: true},
		{ID: "email", Value: func(l LeadResponse) any { return l.Email }, Searchable: true},
		{ID: "phone", Value: func(l LeadResponse) any { return l.Phone }, Searchable: true},
		{ID: "lead_number", Value: func(l LeadResponse) any { return l.LeadNumber }, Searchable: true},
		{ID: "stage", Value: func(l LeadResponse) any { return l.Stage }, Filterable: true},
		{ID: "source", Value: func(l LeadResponse) any { return l.Source }, Filterable: true},
		{ID: "priority", Value: func(l LeadResponse) any { return l.Priority }, Filterable: true},
		{ID: "assigned_to", Value: func(l LeadResponse) any { return l.AssignedTo }, Filterable: true},
		{ID: "deal_amount", Value: func(l LeadResponse) any { return l.DealAmount }},
		{ID: "score", Value: func(l LeadResponse) any { return l.Score }},
		{ID: "follow_up_date", Value: func(l LeadResponse) any { return l.FollowUpDate }},
	}
}

func leadQuery(c *gin.Context) tableview.Query {
	return tableview.QueryFromValues(c.Request.URL.Query(), "stage", "source", "priority", "assigned_to")
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	h.logger.Debug("http create lead", zap.String("company_id", companyID))
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create lead validation failed", zap.Error(err))
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
	h.logger.Debug("http get all leads", zap.String("company_id", companyID))

	resp, err := h.service.GetAll(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page := tableview.Apply(resp, tableColumns(), leadQuery(c))

	meta := response.NewPaginationMeta(int64(page.Total), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Rows, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows := tableview.ApplyAll(resp, tableColumns(), leadQuery(c))

	headers := []string{"Lead Number", "Name", "Email", "Phone", "Service Interest", "Source", "Stage", "Deal Amount", "Follow Up Date", "Score", "Probability", "Priority"}
	records := make([][]string, len(rows))
	for i, l := range rows {
		records[i] = []string{
			l.LeadNumber, l.Name, l.Email, l.Phone, l.ServiceInterest, l.Source, l.Stage,
			strconv.FormatFloat(l.DealAmount, 'f', 2, 64), l.FollowUpDate,
			strconv.Itoa(l.Score), strconv.Itoa(l.Probability), l.Priority,
		}
	}

	filename := fmt.Sprintf("leads_%s", time.Now().Format("20060102"))
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.XLSX(c.Writer, "Leads", headers, records); err != nil {
			h.logger.Error("export leads xlsx failed", zap.Error(err))
		}
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Header("Content-Type", "text/csv")
		if err := export.CSV(c.Writer, headers, records); err != nil {
			h.logger.Error("export leads csv failed", zap.Error(err))
		}
	}
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(ctx, companyID, c.Param("id"))
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
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update lead validation failed", zap.Error(err))
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

	if err := h.service.Delete(ctx, companyID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) RecalculateScore(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.RecalculateScore(ctx, companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) FindDuplicates(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.FindDuplicates(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Merge(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	var req MergeLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http merge leads validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Merge(ctx, companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListScoringRules(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.ListScoringRules(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateScoringRule(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	var req UpdateScoringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update scoring rule validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateScoringRule(ctx, companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
