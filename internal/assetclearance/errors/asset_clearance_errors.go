package assetclearanceerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrInvalidCondition = apperror.New(
		apperror.CodeInvalidInput,
		"condition must be one of Good, Average, OK, Bad, Not Received",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a comment is required for assets in Bad or Not Received condition",
		http.StatusBadRequest,
	)
	ErrMissingDefaultAsset = apperror.New(
		apperror.CodeInvalidInput,
		"the default assets (Laptop, Laptop Charger) must be present on the sheet",
		http.StatusBadRequest,
	)
	ErrReservedCharacters = apperror.New(
		apperror.CodeInvalidInput,
		"asset labels and comments must not contain '#' or '||'",
		http.StatusBadRequest,
	)
	ErrWrongStage = apperror.New(
		apperror.CodeInvalidState,
		"exit form is not pending asset clearance",
		http.StatusConflict,
	)
	ErrNotStageActor = apperror.New(
		apperror.CodeForbidden,
		"only a system admin may submit asset clearance",
		http.StatusForbidden,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"an asset clearance already exists for this form, resubmit with edit mode",
		http.StatusConflict,
	)
	ErrClearanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset clearance not found",
		http.StatusNotFound,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this clearance",
		http.StatusForbidden,
	)
)
