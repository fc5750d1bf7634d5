package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	"github.com/kaanyildiz/assignflow/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// for every error path so the mapping stays in one place.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		respond(c, statusFor(customErr.Err), codeFor(customErr.Err), customErr.Message, customErr.Details)
		return
	}

	switch {
	case apperrors.Is(err,
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrDepartmentNotFound):
		respond(c, http.StatusNotFound, codeFor(err), err.Error(), nil)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password", nil)
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled", nil)
	case apperrors.Is(err, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid or expired token", nil)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", nil)

	case errors.Is(err, apperrors.ErrInvalidState):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidState, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidReviewer):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidReviewer, "Selected reviewer is not eligible", nil)
	case errors.Is(err, apperrors.ErrRemarkTooShort):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Rejection feedback must be at least 10 characters", nil)
	case errors.Is(err, apperrors.ErrOTPInvalid):
		respond(c, http.StatusBadRequest, dto.ErrorCodeOTPInvalid, "Invalid approval code", nil)
	case errors.Is(err, apperrors.ErrOTPExpired):
		respond(c, http.StatusBadRequest, dto.ErrorCodeOTPExpired, "Approval code expired or not requested", nil)
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest, apperrors.ErrInvalidFormat):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error(), nil)

	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrDepartmentAlreadyExists, apperrors.ErrDepartmentHasRelations):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error(), nil)

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "An unexpected error occurred", nil)
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, details interface{}) {
	errorDetail := dto.NewErrorDetail(code, message)
	if details != nil {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

func statusFor(sentinel error) int {
	switch {
	case apperrors.Is(sentinel,
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrDepartmentNotFound):
		return http.StatusNotFound
	case errors.Is(sentinel, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case apperrors.Is(sentinel, apperrors.ErrEmailAlreadyExists, apperrors.ErrDepartmentAlreadyExists, apperrors.ErrDepartmentHasRelations):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func codeFor(sentinel error) dto.ErrorCode {
	switch {
	case apperrors.Is(sentinel,
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrDepartmentNotFound):
		return dto.ErrorCodeResourceNotFound
	case errors.Is(sentinel, apperrors.ErrPermissionDenied):
		return dto.ErrorCodeForbidden
	case errors.Is(sentinel, apperrors.ErrInvalidState):
		return dto.ErrorCodeInvalidState
	case errors.Is(sentinel, apperrors.ErrInvalidReviewer):
		return dto.ErrorCodeInvalidReviewer
	case apperrors.Is(sentinel, apperrors.ErrEmailAlreadyExists, apperrors.ErrDepartmentAlreadyExists, apperrors.ErrDepartmentHasRelations):
		return dto.ErrorCodeResourceAlreadyExists
	default:
		return dto.ErrorCodeValidationFailed
	}
}
