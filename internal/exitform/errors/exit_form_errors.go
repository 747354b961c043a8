package exitformerrors

import (
	"net/http"

	"go-exitflow/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidNoticePeriod = apperror.New(
		apperror.CodeInvalidInput,
		"notice_start_date must be before or equal notice_end_date",
		http.StatusBadRequest,
	)
	ErrExitFormNotFound = apperror.New(
		apperror.CodeNotFound,
		"exit form not found",
		http.StatusNotFound,
	)
	ErrActiveFormExists = apperror.New(
		apperror.CodeConflict,
		"an active exit form already exists for this employee",
		http.StatusConflict,
	)
	ErrNotFormOwner = apperror.New(
		apperror.CodeForbidden,
		"only the form owner may perform this action",
		http.StatusForbidden,
	)
	ErrNotViewable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this exit form",
		http.StatusForbidden,
	)
	ErrFormNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"exit form details can only be changed while pending manager review",
		http.StatusBadRequest,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"exit form status changed since it was read, please reload",
		http.StatusConflict,
	)
)
