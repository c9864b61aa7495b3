package attendance

import (
	"net/http"
	"strings"

	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"
	"go-crm/internal/shared/tableview"

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
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("user_id_validated")
	}
	return employeeID
}

func (h *Handler) CheckIn(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := actorEmployeeID(c)

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func tableColumns() []tableview.Column[AttendanceResponse] {
	return []tableview.Column[AttendanceResponse]{
		{ID: "employee_name", Value: func(a AttendanceResponse) any { return a.EmployeeName }, Searchable: true},
		{ID: "status", Value: func(a AttendanceResponse) any { return a.Status }, Filterable: true},
		{ID: "employee_id", Value: func(a AttendanceResponse) any { return a.EmployeeID }, Filterable: true},
		{ID: "attendance_date", Value: func(a AttendanceResponse) any { return a.AttendanceDate }, Filterable: true},
		{ID: "worked_hours", Value: func(a AttendanceResponse) any { return a.WorkedHours }},
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := actorEmployeeID(c)
	role := strings.ToLower(strings.TrimSpace(c.GetString("role")))
	canReadAll := isPrivilegedRole(role)

	resp, err := h.service.GetAll(c.Request.Context(), companyID, actorID, canReadAll)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	q := tableview.QueryFromValues(c.Request.URL.Query(), "status", "employee_id", "attendance_date")
	page := tableview.Apply(resp, tableColumns(), q)

	meta := response.NewPaginationMeta(int64(page.Total), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Rows, &meta)
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "admin", "hr":
		return true
	default:
		return false
	}
}
