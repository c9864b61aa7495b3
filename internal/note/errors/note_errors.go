package noteerrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrNoteNotFound = apperror.New(
		apperror.CodeNotFound,
		"Note not found",
		http.StatusNotFound,
	)
	ErrPageKeyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"page_key query parameter is required",
		http.StatusBadRequest,
	)
)
