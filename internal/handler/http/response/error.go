package response

import (
	"errors"
	"net/http"

	"github.com/kintai-dev/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/user"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Timeclock domain errors
	case errors.Is(err, timeclock.ErrActionNotAllowed):
		Conflict(w, "This attendance action is not currently enabled")
	case errors.Is(err, timeclock.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailTaken):
		Conflict(w, "Email is already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
