package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrStaffRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"staff record not found",
		http.StatusNotFound,
	)

	ErrKindMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"this specialization does not match the person's department kind",
		http.StatusBadRequest,
	)

	ErrInvalidContractDates = apperror.New(
		apperror.CodeInvalidInput,
		"contract_end must not be before contract_start",
		http.StatusBadRequest,
	)

	ErrInvalidContractDate = apperror.New(
		apperror.CodeInvalidInput,
		"contract dates must be valid dates in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrStaffForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage staff records outside your department",
		http.StatusForbidden,
	)
)
