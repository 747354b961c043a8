package offboardingerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"each checked offboarding item requires a comment",
		http.StatusBadRequest,
	)
	ErrReservedCharacters = apperror.New(
		apperror.CodeInvalidInput,
		"item labels and comments must not contain '#' or '||'",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not in the offboarding window",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only HR may submit the offboarding checklist",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"an offboarding checklist already exists for this form, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrChecklistNotFound = apperror.New(
		apperror.CodeNotFound,
		"offboarding checklist not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this checklist",
		http.StatusForbidden,
	)
)
