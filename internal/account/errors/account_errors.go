package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"account not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"an account with this email already exists",
		http.StatusConflict,
	)

	ErrPersonAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"this person is already linked to another account",
		http.StatusConflict,
	)

	ErrPersonNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"person does not exist",
		http.StatusBadRequest,
	)

	ErrEmployeeNeedsPerson = apperror.New(
		apperror.CodeInvalidInput,
		"an employee account must be linked to a person record",
		http.StatusBadRequest,
	)
)
