package finalapprovalerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrIncompleteChecklist = apperror.New(
		apperror.CodeInvalidInput,
		"final approval requires all eight checklist items checked with comments",
		http.StatusBadRequest,
	)
	ErrUnknownItem = apperror.New(
		apperror.CodeInvalidInput,
		"final approval checklist items are fixed and cannot be renamed",
		http.StatusBadRequest,
	)
	ErrRemarksRequired = apperror.New(
		apperror.CodeInvalidInput,
		"closing remarks are required",
		http.StatusBadRequest,
	)
	ErrReservedCharacters = apperror.New(
		apperror.CodeInvalidInput,
		"comments must not contain '#' or '||'",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not pending final approval",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only HR may submit the final approval",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"a final approval already exists for this form, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"final approval not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this approval",
		http.StatusForbidden,
	)
)
