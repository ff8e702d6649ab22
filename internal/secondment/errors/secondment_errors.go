package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrSecondmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"secondment not found",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must be valid dates in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)

	ErrSameStructure = apperror.New(
		apperror.CodeInvalidInput,
		"origin and destination structures must differ",
		http.StatusBadRequest,
	)

	ErrStructureNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"origin or destination structure does not exist",
		http.StatusBadRequest,
	)

	ErrPersonNotVisible = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)

	ErrAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"this secondment is already completed or cancelled",
		http.StatusConflict,
	)

	ErrSecondmentForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage secondments outside your department",
		http.StatusForbidden,
	)
)
