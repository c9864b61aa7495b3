package settingserrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrSettingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Setting not found",
		http.StatusNotFound,
	)
	ErrPreferenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Table preference not found",
		http.StatusNotFound,
	)
	ErrInvalidSettingValue = apperror.New(
		apperror.CodeInvalidInput,
		"Setting value must be valid JSON",
		http.StatusBadRequest,
	)
)
