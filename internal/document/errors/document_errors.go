package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)

	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a file part named 'file' is required",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds the maximum allowed size",
		http.StatusBadRequest,
	)

	ErrPersonNotVisible = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)

	ErrDocumentForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage this document",
		http.StatusForbidden,
	)
)
