package hrreviewerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrInvalidRound = apperror.New(
		apperror.CodeInvalidInput,
		"verification round must be 1 or 2",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"each checked verification item requires a comment",
		http.StatusBadRequest,
	)
	ErrRevisedDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"revised_notice_end_date is required when action is REVISE_LWD",
		http.StatusBadRequest,
	)
	ErrInvalidRevisedDate = apperror.New(
		apperror.CodeInvalidInput,
		"revised_notice_end_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not at the requested verification round",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only HR may submit a verification review",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"a review for this round already exists, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"hr review not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this review",
		http.StatusForbidden,
	)
)
