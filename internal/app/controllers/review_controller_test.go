package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/middleware"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

// stubAssignmentService lets each test plug in just the method it exercises.
type stubAssignmentService struct {
	rejectFn  func(ctx context.Context, reviewerID, assignmentID int64, req *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error)
	forwardFn func(ctx context.Context, reviewerID, assignmentID int64, req *dto.ForwardAssignmentRequest) (*dto.AssignmentResponse, error)
}

func (s *stubAssignmentService) CreateDraft(context.Context, int64, *dto.CreateAssignmentRequest, *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) UpdateDraft(context.Context, int64, int64, *dto.UpdateDraftRequest, *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) DeleteDraft(context.Context, int64, int64) error { return nil }

func (s *stubAssignmentService) Submit(context.Context, int64, int64, *dto.SubmitAssignmentRequest) (*dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) Resubmit(context.Context, int64, int64, *dto.ResubmitAssignmentRequest, *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) Reject(ctx context.Context, reviewerID, assignmentID int64, req *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error) {
	if s.rejectFn != nil {
		return s.rejectFn(ctx, reviewerID, assignmentID, req)
	}
	return nil, nil
}

func (s *stubAssignmentService) Forward(ctx context.Context, reviewerID, assignmentID int64, req *dto.ForwardAssignmentRequest) (*dto.AssignmentResponse, error) {
	if s.forwardFn != nil {
		return s.forwardFn(ctx, reviewerID, assignmentID, req)
	}
	return nil, nil
}

func (s *stubAssignmentService) GetMyAssignments(context.Context, int64) ([]dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) GetAssignment(context.Context, int64, models.RoleType, int64) (*dto.AssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) GetReviewerDashboard(context.Context, int64) ([]dto.PendingAssignmentResponse, error) {
	return nil, nil
}

func (s *stubAssignmentService) GetHistory(context.Context, int64, models.RoleType, int64) ([]dto.HistoryEntryResponse, error) {
	return nil, nil
}

func reviewTestRouter(svc *stubAssignmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(9))
		c.Set(middleware.ContextRole, models.RoleProfessor)
	})

	ctrl := NewReviewController(svc, nil, nil)
	router.POST("/assignments/:id/reject", ctrl.RejectAssignment)
	router.POST("/assignments/:id/forward", ctrl.ForwardAssignment)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRejectAssignmentPassesActorAndRemark(t *testing.T) {
	var gotReviewer, gotAssignment int64
	var gotRemark string
	svc := &stubAssignmentService{
		rejectFn: func(_ context.Context, reviewerID, assignmentID int64, req *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error) {
			gotReviewer = reviewerID
			gotAssignment = assignmentID
			gotRemark = req.Remark
			return &dto.AssignmentResponse{ID: assignmentID, Status: models.StatusRejected}, nil
		},
	}

	recorder := postJSON(t, reviewTestRouter(svc), "/assignments/7/reject", gin.H{
		"remark": "the methodology section needs work",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(9), gotReviewer)
	assert.Equal(t, int64(7), gotAssignment)
	assert.Equal(t, "the methodology section needs work", gotRemark)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestRejectAssignmentMissingRemark(t *testing.T) {
	called := false
	svc := &stubAssignmentService{
		rejectFn: func(context.Context, int64, int64, *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error) {
			called = true
			return nil, nil
		},
	}

	recorder := postJSON(t, reviewTestRouter(svc), "/assignments/7/reject", gin.H{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, called, "binding failure must not reach the service")
}

func TestRejectAssignmentShortRemarkMapsTo400(t *testing.T) {
	svc := &stubAssignmentService{
		rejectFn: func(context.Context, int64, int64, *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error) {
			return nil, apperrors.ErrRemarkTooShort
		},
	}

	recorder := postJSON(t, reviewTestRouter(svc), "/assignments/7/reject", gin.H{
		"remark": "long enough to bind but trimmed short by the service",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestForwardAssignmentCrossDepartmentMapsTo403(t *testing.T) {
	svc := &stubAssignmentService{
		forwardFn: func(context.Context, int64, int64, *dto.ForwardAssignmentRequest) (*dto.AssignmentResponse, error) {
			return nil, apperrors.NewForbiddenError("forward target must be in the same department")
		},
	}

	recorder := postJSON(t, reviewTestRouter(svc), "/assignments/7/forward", gin.H{
		"newReviewerId": 20,
	})

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRejectAssignmentBadIDParam(t *testing.T) {
	svc := &stubAssignmentService{}
	recorder := postJSON(t, reviewTestRouter(svc), "/assignments/abc/reject", gin.H{
		"remark": "valid remark body for a bad id",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
