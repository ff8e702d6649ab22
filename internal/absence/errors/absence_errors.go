package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrAbsenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"absence not found",
		http.StatusNotFound,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must be valid dates in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only a pending absence can be decided",
		http.StatusConflict,
	)

	ErrCancelNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only a pending absence can be cancelled",
		http.StatusConflict,
	)

	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to decide this absence",
		http.StatusForbidden,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel their absence",
		http.StatusForbidden,
	)

	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a rejection requires a non-empty reason",
		http.StatusBadRequest,
	)

	ErrPersonNotVisible = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)

	ErrNoPersonRecord = apperror.New(
		apperror.CodeInvalidInput,
		"your account is not linked to a person record",
		http.StatusBadRequest,
	)
)
