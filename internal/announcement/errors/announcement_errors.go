package announcementerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidAnnouncementID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid announcement ID",
		http.StatusBadRequest,
	)
	ErrAnnouncementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Announcement not found",
		http.StatusNotFound,
	)
)
