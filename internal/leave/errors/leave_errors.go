package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave ID",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidationError,
		"Leave type must be casual or sick",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidationError,
		"Invalid date format, expected YYYY-MM-DD or RFC3339",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.RequiredField("Reason")
	ErrInvalidStatus  = apperror.New(
		apperror.CodeValidationError,
		"Status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrEmployeeProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"Leave request has already been decided",
		http.StatusConflict,
	)
	ErrLeaveChanged = apperror.New(
		apperror.CodeConflict,
		"Leave request was modified concurrently",
		http.StatusConflict,
	)
)
