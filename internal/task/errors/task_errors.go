package taskerrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task status",
		http.StatusBadRequest,
	)
	ErrInvalidTaskPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task priority",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid due_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
