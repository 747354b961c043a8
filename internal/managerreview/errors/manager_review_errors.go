package managerreviewerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be one of APPROVE, REJECT, ON_HOLD",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"each checked assessment item requires a comment",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not pending manager review",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only the reporting manager may review this exit form",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"a manager review already exists for this form, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"manager review not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this review",
		http.StatusForbidden,
	)
)
