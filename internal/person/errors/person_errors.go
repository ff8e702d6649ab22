package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)

	ErrNationalIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a person with this national id already exists",
		http.StatusConflict,
	)

	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a person with this employee number already exists",
		http.StatusConflict,
	)

	ErrEmploymentKindMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"employment kind does not match the department kind",
		http.StatusBadRequest,
	)

	ErrInvalidBirthDate = apperror.New(
		apperror.CodeInvalidInput,
		"birth_date must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"hire_date must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"manager does not exist",
		http.StatusBadRequest,
	)

	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"a person cannot be their own manager",
		http.StatusBadRequest,
	)

	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"department does not exist",
		http.StatusBadRequest,
	)

	ErrPersonForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage persons outside your department",
		http.StatusForbidden,
	)
)
