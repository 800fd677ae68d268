package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Raw database errors
// are logged and answered with a generic 500; they never reach the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", err)

	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Not enrolled in this course", err)

	case errors.Is(err, apperrors.ErrEnrollmentRejected):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Enrollment was rejected", err)

	case errors.Is(err, apperrors.ErrEnrollmentPending):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Enrollment is awaiting review", err)

	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already enrolled in this course", err)

	case errors.Is(err, apperrors.ErrCourseCodeAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course code already exists", err)

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists", err)

	case errors.Is(err, apperrors.ErrInternSlotTaken):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Course already has an assigned intern", err)

	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Request conflicts with current state", err)

	case errors.Is(err, apperrors.ErrAttendanceCodeExpired):
		respond(c, http.StatusGone, dto.ErrorCodeResourceExpired, "Attendance code has expired", err)

	case errors.Is(err, apperrors.ErrAttendanceCodeInvalid):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attendance code not recognized", err)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)

	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error in request")

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	errorDetail := dto.NewErrorDetail(code, message)

	// Carry the operation-specific message when the service wrapped one in.
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		errorDetail = errorDetail.WithDetails(custom.Message)
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}
