package exitworkflowerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrInvalidStep = apperror.New(
		apperror.CodeInvalidInput,
		"step must be between 1 and 8",
		http.StatusBadRequest,
	)
	ErrStepNotReachable = apperror.New(
		apperror.CodeInvalidState,
		"this step has not been reached yet for this exit form",
		http.StatusConflict,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this exit workflow",
		http.StatusForbidden,
	)
)
