package structureerrors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"structure not found",
		http.StatusNotFound,
	)
	ErrInvalidStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid structure id",
		http.StatusBadRequest,
	)
	ErrParentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"parent structure not found",
		http.StatusBadRequest,
	)
	ErrParentCycle = apperror.New(
		apperror.CodeInvalidInput,
		"structure cannot be its own ancestor",
		http.StatusBadRequest,
	)
	ErrParentDepartmentMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"parent structure belongs to a different department",
		http.StatusBadRequest,
	)
)
