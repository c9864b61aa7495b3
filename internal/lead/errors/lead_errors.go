package leaderrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrLeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"Lead not found",
		http.StatusNotFound,
	)
	ErrLeadNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Lead number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidFollowUpDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid follow_up_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrScoringRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Scoring rule not found",
		http.StatusNotFound,
	)
	ErrMergePrimaryInDuplicates = apperror.New(
		apperror.CodeInvalidInput,
		"Primary lead cannot be in the duplicate list",
		http.StatusBadRequest,
	)
	ErrMergeLeadMissing = apperror.New(
		apperror.CodeInvalidInput,
		"One or more leads to merge were not found in this company",
		http.StatusBadRequest,
	)
)
