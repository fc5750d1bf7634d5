package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/services"
	"github.com/kaanyildiz/assignflow/internal/middleware"
)

// AssignmentController handles the student-facing assignment endpoints
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// CreateAssignment creates a new draft
// @Summary Create a draft assignment
// @Description Creates a DRAFT assignment, optionally with an uploaded file
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string true "Category" Enums(ASSIGNMENT, THESIS, REPORT)
// @Param file formData file false "Assignment file"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Draft created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	file, _ := ctx.FormFile("file")

	assignment, err := c.assignmentService.CreateDraft(ctx, userID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Draft created"))
}

// GetMyAssignments lists the student's own assignments
// @Summary List own assignments
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse} "Assignments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /student/assignments [get]
func (c *AssignmentController) GetMyAssignments(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	assignments, err := c.assignmentService.GetMyAssignments(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments, "Assignments"))
}

// GetAssignment retrieves one of the student's assignments
// @Summary Get an assignment
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
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

// UpdateDraft updates a draft assignment
// @Summary Update a draft
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateDraftRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Draft updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or assignment not editable"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id} [put]
func (c *AssignmentController) UpdateDraft(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDraftRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.UpdateDraft(ctx, userID, id, &req, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Draft updated"))
}

// DeleteDraft removes a draft assignment
// @Summary Delete a draft
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse "Draft deleted"
// @Failure 400 {object} dto.ErrorResponse "Assignment is not a draft"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id} [delete]
func (c *AssignmentController) DeleteDraft(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.assignmentService.DeleteDraft(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Draft deleted"))
}

// SubmitAssignment routes a draft to a reviewer
// @Summary Submit an assignment for review
// @Description Moves a DRAFT assignment to SUBMITTED, assigned to a professor of the student's department
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.SubmitAssignmentRequest true "Reviewer"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid state or ineligible reviewer"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id}/submit [post]
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.Submit(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment submitted"))
}

// ResubmitAssignment sends a rejected assignment back for review
// @Summary Resubmit a rejected assignment
// @Description Returns a REJECTED assignment to SUBMITTED for the reviewer who rejected it, optionally with a revised description or file
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param description formData string false "Revised description"
// @Param file formData file false "Replacement file"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment resubmitted"
// @Failure 400 {object} dto.ErrorResponse "Assignment is not rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id}/resubmit [post]
func (c *AssignmentController) ResubmitAssignment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResubmitAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, _ := ctx.FormFile("file")

	assignment, err := c.assignmentService.Resubmit(ctx, userID, id, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment resubmitted"))
}

// GetHistory returns the assignment's transition log
// @Summary Get assignment history
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.HistoryEntryResponse} "History"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{id}/history [get]
func (c *AssignmentController) GetHistory(ctx *gin.Context) {
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
