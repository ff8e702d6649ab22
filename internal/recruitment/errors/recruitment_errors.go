package errors

import (
	"net/http"

	"go-sirh/internal/shared/apperror"
)

var (
	ErrRecruitmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"recruitment not found",
		http.StatusNotFound,
	)

	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)

	ErrInvalidDeadline = apperror.New(
		apperror.CodeInvalidInput,
		"deadline must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrKindMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"employment kind does not match the department kind",
		http.StatusBadRequest,
	)

	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"department does not exist",
		http.StatusBadRequest,
	)

	ErrRecruitmentNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"candidates can only be added to an open recruitment",
		http.StatusConflict,
	)

	ErrInvalidPipelineMove = apperror.New(
		apperror.CodeInvalidState,
		"this pipeline transition is not allowed",
		http.StatusConflict,
	)

	ErrRecruitmentForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage recruitments outside your department",
		http.StatusForbidden,
	)
)
