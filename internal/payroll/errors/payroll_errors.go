package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)

	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"a payroll record already exists for this person and month",
		http.StatusConflict,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be in YYYY-MM format",
		http.StatusBadRequest,
	)

	ErrInvalidStatusChange = apperror.New(
		apperror.CodeInvalidState,
		"this status change is not allowed",
		http.StatusConflict,
	)

	ErrPersonNotVisible = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)

	ErrPayrollForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage payroll outside your department",
		http.StatusForbidden,
	)
)
