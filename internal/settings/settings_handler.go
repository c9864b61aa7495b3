package settings

import (
	"net/http"

	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

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

func actorEmployeeID(c *gin.Context) string {
	id := c.GetString("employee_id")
	if id == "" {
		id = c.GetString("user_id_validated")
	}
	return id
}

func (h *Handler) GetSetting(c *gin.Context) {
	companyID := c.GetString("company_id")
	key := c.Param("key")

	resp, err := h.service.GetSetting(c.Request.Context(), companyID, key)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertSetting(c *gin.Context) {
	companyID := c.GetString("company_id")
	key := c.Param("key")

	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpsertSetting(c.Request.Context(), companyID, key, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTablePreference(c *gin.Context) {
	companyID := c.GetString("company_id")
	tableKey := c.Param("table_key")

	resp, err := h.service.GetTablePreference(c.Request.Context(), companyID, actorEmployeeID(c), tableKey)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertTablePreference(c *gin.Context) {
	companyID := c.GetString("company_id")
	tableKey := c.Param("table_key")

	var req UpsertTablePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpsertTablePreference(c.Request.Context(), companyID, actorEmployeeID(c), tableKey, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
