package dto

import (
	"time"

	"github.com/kaanyildiz/assignflow/internal/app/models"
)

// CreateAssignmentRequest is the multipart form for creating a draft
type CreateAssignmentRequest struct {
	Title       string `form:"title" binding:"required" validate:"required,max=200"`
	Description string `form:"description" validate:"max=5000"`
	Category    string `form:"category" binding:"required" validate:"required,oneof=ASSIGNMENT THESIS REPORT"`
}

// UpdateDraftRequest updates a draft's editable fields
type UpdateDraftRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=ASSIGNMENT THESIS REPORT"`
}

// ResubmitAssignmentRequest optionally revises a rejected assignment before
// it goes back to the reviewer
type ResubmitAssignmentRequest struct {
	Description *string `form:"description" validate:"omitempty,max=5000"`
}

// SubmitAssignmentRequest routes a draft to a reviewer
type SubmitAssignmentRequest struct {
	ReviewerID int64 `json:"reviewerId" binding:"required" validate:"required,gt=0"`
}

// RejectAssignmentRequest carries the mandatory rejection feedback
type RejectAssignmentRequest struct {
	Remark string `json:"remark" binding:"required" validate:"required,min=10"`
}

// ForwardAssignmentRequest reassigns an in-review assignment
type ForwardAssignmentRequest struct {
	NewReviewerID int64  `json:"newReviewerId" binding:"required" validate:"required,gt=0"`
	Note          string `json:"note,omitempty" validate:"max=1000"`
}

// RequestApprovalOTPRequest starts the OTP-gated approval
type RequestApprovalOTPRequest struct {
	Remarks   string `json:"remarks,omitempty" validate:"max=1000"`
	Signature string `json:"signature,omitempty" validate:"max=200"`
}

// VerifyApprovalOTPRequest finalizes the OTP-gated approval
type VerifyApprovalOTPRequest struct {
	OTP       string `json:"otp" binding:"required" validate:"required,len=6,numeric"`
	Remarks   string `json:"remarks,omitempty" validate:"max=1000"`
	Signature string `json:"signature,omitempty" validate:"max=200"`
}

// AssignmentResponse is the standard assignment representation
type AssignmentResponse struct {
	ID          int64                     `json:"id" example:"7"`
	Title       string                    `json:"title" example:"Graph Coloring Survey"`
	Description string                    `json:"description,omitempty"`
	Category    models.AssignmentCategory `json:"category" example:"THESIS"`
	Status      models.AssignmentStatus   `json:"status" example:"SUBMITTED"`
	StatusLabel string                    `json:"statusLabel" example:"Awaiting Review"`
	StatusColor string                    `json:"statusColor" example:"blue"`
	FilePath    string                    `json:"filePath,omitempty"`
	StudentID   int64                     `json:"studentId" example:"3"`
	ReviewerID  *int64                    `json:"reviewerId,omitempty" example:"9"`
	CreatedAt   time.Time                 `json:"createdAt"`
	SubmittedAt *time.Time                `json:"submittedAt,omitempty"`
}

// NewAssignmentResponse converts an Assignment model to its response DTO
func NewAssignmentResponse(a *models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Status:      a.Status,
		StatusLabel: a.Status.Label(),
		StatusColor: a.Status.Color(),
		FilePath:    a.FilePath,
		StudentID:   a.StudentID,
		ReviewerID:  a.ReviewerID,
		CreatedAt:   a.CreatedAt,
		SubmittedAt: a.SubmittedAt,
	}
}

// PendingAssignmentResponse is a dashboard row for a reviewer
type PendingAssignmentResponse struct {
	AssignmentResponse
	StudentName string `json:"studentName" example:"Jane Roe"`
	DaysPending int    `json:"daysPending" example:"4"`
}

// HistoryEntryResponse is one row of the append-only transition log
type HistoryEntryResponse struct {
	ID           int64                `json:"id"`
	AssignmentID int64                `json:"assignmentId"`
	ReviewerID   int64                `json:"reviewerId"`
	ReviewerName string               `json:"reviewerName,omitempty"`
	Action       models.HistoryAction `json:"action" example:"FORWARDED"`
	Remark       *string              `json:"remark,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// NewHistoryEntryResponse converts a history model to its response DTO
func NewHistoryEntryResponse(h *models.AssignmentHistory) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		ID:           h.ID,
		AssignmentID: h.AssignmentID,
		ReviewerID:   h.ReviewerID,
		Action:       h.Action,
		Remark:       h.Remark,
		CreatedAt:    h.CreatedAt,
	}
	if h.Reviewer != nil {
		resp.ReviewerName = h.Reviewer.DisplayName()
	}
	return resp
}

// ForwardRecipientResponse is one eligible forward target
type ForwardRecipientResponse struct {
	ID    int64           `json:"id" example:"12"`
	Name  string          `json:"name" example:"Ali Demir"`
	Email string          `json:"email" example:"ali.demir@school.edu.tr"`
	Role  models.RoleType `json:"role" example:"HOD"`
}
