package usererrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of Employee, HR, Admin",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrPasswordTooLong = apperror.New(
		apperror.CodeValidationError,
		"Password must be at most 72 bytes",
		http.StatusBadRequest,
	)

	ErrCannotModifySelf = apperror.New(
		apperror.CodeForbidden,
		"You cannot change your own status or role",
		http.StatusForbidden,
	)
)
