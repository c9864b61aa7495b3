package documenterrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrDocumentAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this document",
		http.StatusForbidden,
	)
	ErrDownloadNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to download this document",
		http.StatusForbidden,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"File is required",
		http.StatusBadRequest,
	)
	ErrStorageUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Object storage is unavailable",
		http.StatusServiceUnavailable,
	)
)
