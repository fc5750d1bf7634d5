package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"assignment not found", apperrors.ErrAssignmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid lifecycle state", apperrors.ErrInvalidState, http.StatusBadRequest, dto.ErrorCodeInvalidState},
		{"ineligible reviewer", apperrors.ErrInvalidReviewer, http.StatusBadRequest, dto.ErrorCodeInvalidReviewer},
		{"remark too short", apperrors.ErrRemarkTooShort, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"wrong approval code", apperrors.ErrOTPInvalid, http.StatusBadRequest, dto.ErrorCodeOTPInvalid},
		{"expired approval code", apperrors.ErrOTPExpired, http.StatusBadRequest, dto.ErrorCodeOTPExpired},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate department", apperrors.ErrDepartmentAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"unexpected error", errors.New("pool exhausted"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAPIErrorWrappedCustomError(t *testing.T) {
	status, body := handleError(t, apperrors.NewInvalidStateError("assignment in status APPROVED cannot be rejected"))
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeInvalidState, body.Error.Code)
	assert.Equal(t, "assignment in status APPROVED cannot be rejected", body.Message)
}

func TestHandleAPIErrorForbiddenWithMessage(t *testing.T) {
	status, body := handleError(t, apperrors.NewForbiddenError("forward target must be in the same department"))
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, body.Error.Code)
}

func TestHandleAPIErrorDoesNotLeakInternals(t *testing.T) {
	_, body := handleError(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.NotContains(t, body.Message, "10.0.0.5")
}
