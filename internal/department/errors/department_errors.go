package departmenterrors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrChiefNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"chief account not found",
		http.StatusBadRequest,
	)
	ErrChiefRoleMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"chief role does not match department kind",
		http.StatusBadRequest,
	)
	ErrChiefAlreadyLeads = apperror.New(
		apperror.CodeConflict,
		"this account already leads another department",
		http.StatusConflict,
	)
)
