package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/services"
	"github.com/kaanyildiz/assignflow/internal/middleware"
)

// ReviewController handles the reviewer-facing endpoints: dashboard,
// approval, rejection and forwarding.
type ReviewController struct {
	assignmentService services.AssignmentService
	approvalService   services.ApprovalService
	routingService    services.RoutingService
}

// NewReviewController creates a new ReviewController
func NewReviewController(
	assignmentService services.AssignmentService,
	approvalService services.ApprovalService,
	routingService services.RoutingService,
) *ReviewController {
	return &ReviewController{
		assignmentService: assignmentService,
		approvalService:   approvalService,
		routingService:    routingService,
	}
}

// GetDashboard lists the assignments awaiting the reviewer's decision
// @Summary Reviewer dashboard
// @Description Lists SUBMITTED and FORWARDED assignments assigned to the caller, with days pending
// @Tags professor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingAssignmentResponse} "Pending assignments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a reviewer"
// @Router /professor/dashboard [get]
func (c *ReviewController) GetDashboard(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	pending, err := c.assignmentService.GetReviewerDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pending, "Pending assignments"))
}

// GetAssignment retrieves an assignment visible to the reviewer
// @Summary Get an assignment
// @Tags professor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /professor/assignments/{id} [get]
func (c *ReviewController) GetAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	role, _ := middleware.CurrentRole(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetAssignment(ctx, userID, role, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment"))
}

// GetHistory returns an assignment's transition log
// @Summary Get assignment history
// @Tags professor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.HistoryEntryResponse} "History"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /professor/assignments/{id}/history [get]
func (c *ReviewController) GetHistory(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	role, _ := middleware.CurrentRole(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	history, err := c.assignmentService.GetHistory(ctx, userID, role, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(history, "History"))
}

// RequestApprovalOTP emails the caller a one-time approval code
// @Summary Request an approval code
// @Description Emails a 6-digit single-use code required to finalize the approval. The code is never returned in the response.
// @Tags professor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.RequestApprovalOTPRequest false "Pending remark and signature"
// @Success 200 {object} dto.APIResponse "Approval code sent"
// @Failure 400 {object} dto.ErrorResponse "Assignment not under review"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or not assigned to caller"
// @Router /professor/assignments/{id}/approve/request-otp [post]
func (c *ReviewController) RequestApprovalOTP(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RequestApprovalOTPRequest
	if ctx.Request.ContentLength > 0 {
		if !middleware.BindAndValidate(ctx, &req) {
			return
		}
	}

	if err := c.approvalService.RequestApprovalOTP(ctx, userID, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Approval code sent"))
}

// VerifyApprovalOTP finalizes an approval with the emailed code
// @Summary Verify an approval code
// @Description Approves the assignment when the single-use code matches
// @Tags professor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.VerifyApprovalOTPRequest true "Code, remark and signature"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or not assigned to caller"
// @Router /professor/assignments/{id}/approve/verify [post]
func (c *ReviewController) VerifyApprovalOTP(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VerifyApprovalOTPRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.approvalService.VerifyApprovalOTP(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment approved"))
}

// RejectAssignment rejects an assignment with mandatory feedback
// @Summary Reject an assignment
// @Description Returns the assignment to the student with feedback of at least 10 characters
// @Tags professor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.RejectAssignmentRequest true "Feedback"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment rejected"
// @Failure 400 {object} dto.ErrorResponse "Feedback too short or invalid state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or not assigned to caller"
// @Router /professor/assignments/{id}/reject [post]
func (c *ReviewController) RejectAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectAssignmentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.Reject(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment rejected"))
}

// GetForwardRecipients lists eligible forward targets
// @Summary List forward recipients
// @Description Lists the active professors and heads of the caller's department
// @Tags professor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ForwardRecipientResponse} "Eligible recipients"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /professor/forward-recipients [get]
func (c *ReviewController) GetForwardRecipients(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	recipients, err := c.routingService.ListForwardRecipients(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(recipients, "Eligible recipients"))
}

// ForwardAssignment reassigns an assignment to another reviewer
// @Summary Forward an assignment
// @Description Reassigns the assignment to another reviewer of the same department
// @Tags professor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.ForwardAssignmentRequest true "New reviewer and optional note"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment forwarded"
// @Failure 400 {object} dto.ErrorResponse "Ineligible target or invalid state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Target in another department"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or not assigned to caller"
// @Router /professor/assignments/{id}/forward [post]
func (c *ReviewController) ForwardAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ForwardAssignmentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.Forward(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment forwarded"))
}
