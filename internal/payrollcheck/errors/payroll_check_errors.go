package payrollcheckerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"each checked payroll item requires a comment",
		http.StatusBadRequest,
	)
	ErrReservedCharacters = apperror.New(
		apperror.CodeInvalidInput,
		"item labels and comments must not contain '#' or '||'",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not pending payroll checks",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only the payroll team may submit payroll checks",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"payroll checks already exist for this form, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrChecksNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll checks not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view these checks",
		http.StatusForbidden,
	)
)
