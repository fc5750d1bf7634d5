package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	"github.com/kaanyildiz/assignflow/internal/pkg/auth"
	"github.com/kaanyildiz/assignflow/internal/pkg/email"
	"github.com/kaanyildiz/assignflow/internal/pkg/filestorage"
	"github.com/kaanyildiz/assignflow/internal/pkg/helpers"
	"github.com/kaanyildiz/assignflow/internal/pkg/logger"
	"github.com/kaanyildiz/assignflow/internal/pkg/validation"
)

// AssignmentService defines the interface for assignment lifecycle operations
type AssignmentService interface {
	CreateDraft(ctx context.Context, studentID int64, req *dto.CreateAssignmentRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error)
	UpdateDraft(ctx context.Context, studentID, assignmentID int64, req *dto.UpdateDraftRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error)
	DeleteDraft(ctx context.Context, studentID, assignmentID int64) error
	Submit(ctx context.Context, studentID, assignmentID int64, req *dto.SubmitAssignmentRequest) (*dto.AssignmentResponse, error)
	Resubmit(ctx context.Context, studentID, assignmentID int64, req *dto.ResubmitAssignmentRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error)
	Reject(ctx context.Context, reviewerID, assignmentID int64, req *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error)
	Forward(ctx context.Context, reviewerID, assignmentID int64, req *dto.ForwardAssignmentRequest) (*dto.AssignmentResponse, error)
	GetMyAssignments(ctx context.Context, studentID int64) ([]dto.AssignmentResponse, error)
	GetAssignment(ctx context.Context, userID int64, role models.RoleType, assignmentID int64) (*dto.AssignmentResponse, error)
	GetReviewerDashboard(ctx context.Context, reviewerID int64) ([]dto.PendingAssignmentResponse, error)
	GetHistory(ctx context.Context, userID int64, role models.RoleType, assignmentID int64) ([]dto.HistoryEntryResponse, error)
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignmentRepo   assignmentStore
	historyRepo      historyStore
	notificationRepo notificationStore
	userRepo         userStore
	txManager        txManager
	fileStorage      filestorage.FileStorage
	emailService     email.EmailService
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo assignmentStore,
	historyRepo historyStore,
	notificationRepo notificationStore,
	userRepo userStore,
	txManager txManager,
	fileStorage filestorage.FileStorage,
	emailService email.EmailService,
) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo:   assignmentRepo,
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		fileStorage:      fileStorage,
		emailService:     emailService,
	}
}

// CreateDraft creates a new DRAFT assignment for the student. The file upload
// is optional at this stage; submission requires one.
func (s *assignmentServiceImpl) CreateDraft(ctx context.Context, studentID int64, req *dto.CreateAssignmentRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	category := models.AssignmentCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.NewValidationError("invalid assignment category")
	}

	assignment := &models.Assignment{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Status:      models.StatusDraft,
		StudentID:   studentID,
	}

	if file != nil {
		filePath, err := s.fileStorage.SaveFileWithPath(file, "assignments")
		if err != nil {
			return nil, fmt.Errorf("error saving assignment file: %w", err)
		}
		assignment.FilePath = filePath
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// UpdateDraft updates a draft's editable fields. Only the owner may update,
// and only while the assignment is still a DRAFT; rejected assignments are
// revised through Resubmit.
func (s *assignmentServiceImpl) UpdateDraft(ctx context.Context, studentID, assignmentID int64, req *dto.UpdateDraftRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	assignment, err := s.getOwned(ctx, studentID, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.StatusDraft {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be edited", assignment.Status))
	}

	if req.Title != nil {
		assignment.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		assignment.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category := models.AssignmentCategory(*req.Category)
		if !category.Valid() {
			return nil, apperrors.NewValidationError("invalid assignment category")
		}
		assignment.Category = category
	}
	if file != nil {
		filePath, err := s.fileStorage.SaveFileWithPath(file, "assignments")
		if err != nil {
			return nil, fmt.Errorf("error saving assignment file: %w", err)
		}
		if assignment.FilePath != "" {
			if err := s.fileStorage.DeleteFile(assignment.FilePath); err != nil {
				logger.Warn().Err(err).Str("path", assignment.FilePath).Msg("Failed to delete replaced assignment file")
			}
		}
		assignment.FilePath = filePath
	}

	if err := s.assignmentRepo.UpdateDraft(ctx, assignment); err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// DeleteDraft removes a DRAFT assignment and its uploaded file
func (s *assignmentServiceImpl) DeleteDraft(ctx context.Context, studentID, assignmentID int64) error {
	assignment, err := s.getOwned(ctx, studentID, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status != models.StatusDraft {
		return apperrors.NewInvalidStateError("only draft assignments can be deleted")
	}

	if err := s.assignmentRepo.Delete(ctx, assignmentID); err != nil {
		return err
	}

	if assignment.FilePath != "" {
		if err := s.fileStorage.DeleteFile(assignment.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", assignment.FilePath).Msg("Failed to delete assignment file")
		}
	}
	return nil
}

// Submit routes a DRAFT assignment to a reviewer. The reviewer must be an
// active professor of the student's own department. The status update,
// history entry and reviewer notification are committed in a single
// transaction.
func (s *assignmentServiceImpl) Submit(ctx context.Context, studentID, assignmentID int64, req *dto.SubmitAssignmentRequest) (*dto.AssignmentResponse, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	reviewer, err := s.userRepo.GetByID(ctx, req.ReviewerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidReviewer
		}
		return nil, err
	}
	if err := validateSubmitTarget(reviewer, student.DepartmentID); err != nil {
		return nil, err
	}

	var updated *models.Assignment
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignment, err := s.assignmentRepo.GetByIDForUpdate(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if assignment.StudentID != studentID {
			return apperrors.ErrAssignmentNotFound
		}
		if assignment.Status != models.StatusDraft {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be submitted", assignment.Status))
		}
		if assignment.FilePath == "" {
			return apperrors.NewValidationError("an uploaded file is required before submission")
		}

		now := time.Now()
		assignment.Status = models.StatusSubmitted
		assignment.ReviewerID = &req.ReviewerID
		assignment.SubmittedAt = &now

		if err := s.assignmentRepo.ApplyTransition(ctx, tx, assignment); err != nil {
			return err
		}
		if err := s.historyRepo.Insert(ctx, tx, &models.AssignmentHistory{
			AssignmentID: assignment.ID,
			ReviewerID:   studentID,
			Action:       models.ActionSubmitted,
		}); err != nil {
			return err
		}
		if err := s.notificationRepo.Insert(ctx, tx, &models.Notification{
			UserID:       req.ReviewerID,
			AssignmentID: assignment.ID,
			Message:      fmt.Sprintf("%s submitted \"%s\" for your review", student.DisplayName(), assignment.Title),
			Type:         models.NotificationSubmitted,
		}); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a failed email never rolls back a committed submission.
	if err := s.emailService.SendSubmissionNotice(reviewer.Email, reviewer.DisplayName(), updated.Title, student.DisplayName()); err != nil {
		logger.Warn().Err(err).Int64("reviewerId", reviewer.ID).Msg("Failed to send submission notice email")
	}

	resp := dto.NewAssignmentResponse(updated)
	return &resp, nil
}

// Resubmit sends a REJECTED assignment back to the reviewer who rejected it,
// optionally with a revised description or replacement file. The assignment
// returns to SUBMITTED with a fresh submission time.
func (s *assignmentServiceImpl) Resubmit(ctx context.Context, studentID, assignmentID int64, req *dto.ResubmitAssignmentRequest, file *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	assignment, err := s.getOwned(ctx, studentID, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.StatusRejected {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be resubmitted", assignment.Status))
	}

	// The rejection cleared the reviewer; recover them from the history log.
	rejection, err := s.historyRepo.LatestByAction(ctx, assignmentID, models.ActionRejected)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewInvalidStateError("assignment has no rejection to resubmit against")
		}
		return nil, err
	}
	reviewerID := rejection.ReviewerID

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	var newFilePath string
	if file != nil {
		newFilePath, err = s.fileStorage.SaveFileWithPath(file, "assignments")
		if err != nil {
			return nil, fmt.Errorf("error saving assignment file: %w", err)
		}
	}

	var updated *models.Assignment
	var replacedFile string
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignment, err := s.assignmentRepo.GetByIDForUpdate(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if assignment.StudentID != studentID {
			return apperrors.ErrAssignmentNotFound
		}
		if assignment.Status != models.StatusRejected {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be resubmitted", assignment.Status))
		}

		now := time.Now()
		assignment.Status = models.StatusSubmitted
		assignment.ReviewerID = &reviewerID
		assignment.SubmittedAt = &now
		if req.Description != nil {
			assignment.Description = strings.TrimSpace(*req.Description)
		}
		if newFilePath != "" {
			replacedFile = assignment.FilePath
			assignment.FilePath = newFilePath
		}

		if err := s.assignmentRepo.ApplyTransition(ctx, tx, assignment); err != nil {
			return err
		}
		if err := s.historyRepo.Insert(ctx, tx, &models.AssignmentHistory{
			AssignmentID: assignment.ID,
			ReviewerID:   studentID,
			Action:       models.ActionSubmitted,
		}); err != nil {
			return err
		}
		if err := s.notificationRepo.Insert(ctx, tx, &models.Notification{
			UserID:       reviewerID,
			AssignmentID: assignment.ID,
			Message:      fmt.Sprintf("%s resubmitted \"%s\" for your review", student.DisplayName(), assignment.Title),
			Type:         models.NotificationSubmitted,
		}); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		if newFilePath != "" {
			if delErr := s.fileStorage.DeleteFile(newFilePath); delErr != nil {
				logger.Warn().Err(delErr).Str("path", newFilePath).Msg("Failed to delete orphaned assignment file")
			}
		}
		return nil, err
	}

	if replacedFile != "" {
		if err := s.fileStorage.DeleteFile(replacedFile); err != nil {
			logger.Warn().Err(err).Str("path", replacedFile).Msg("Failed to delete replaced assignment file")
		}
	}

	if err := s.emailService.SendSubmissionNotice(reviewer.Email, reviewer.DisplayName(), updated.Title, student.DisplayName()); err != nil {
		logger.Warn().Err(err).Int64("reviewerId", reviewerID).Msg("Failed to send submission notice email")
	}

	resp := dto.NewAssignmentResponse(updated)
	return &resp, nil
}

// Reject moves an assignment under review back to the student with mandatory
// feedback. The reviewer assignment is cleared so the student can revise and
// resubmit.
func (s *assignmentServiceImpl) Reject(ctx context.Context, reviewerID, assignmentID int64, req *dto.RejectAssignmentRequest) (*dto.AssignmentResponse, error) {
	remark := strings.TrimSpace(req.Remark)
	if len(remark) < validation.RemarkMinLength {
		return nil, apperrors.ErrRemarkTooShort
	}

	actor, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	signature, err := auth.HashSignature(actor.DisplayName())
	if err != nil {
		return nil, fmt.Errorf("error hashing signature: %w", err)
	}

	var updated *models.Assignment
	var studentID int64
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignment, err := s.assignmentRepo.GetByIDForUpdate(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if !assignment.AssignedTo(reviewerID) {
			return apperrors.ErrAssignmentNotFound
		}
		if !assignment.Status.UnderReview() {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be rejected", assignment.Status))
		}

		studentID = assignment.StudentID
		assignment.Status = models.StatusRejected
		assignment.ReviewerID = nil

		if err := s.assignmentRepo.ApplyTransition(ctx, tx, assignment); err != nil {
			return err
		}
		if err := s.historyRepo.Insert(ctx, tx, &models.AssignmentHistory{
			AssignmentID: assignment.ID,
			ReviewerID:   reviewerID,
			Action:       models.ActionRejected,
			Remark:       &remark,
			Signature:    &signature,
		}); err != nil {
			return err
		}
		if err := s.notificationRepo.Insert(ctx, tx, &models.Notification{
			UserID:       studentID,
			AssignmentID: assignment.ID,
			Message:      fmt.Sprintf("\"%s\" was rejected: %s", assignment.Title, remark),
			Type:         models.NotificationRejected,
		}); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if student, err := s.userRepo.GetByID(ctx, studentID); err == nil {
		if err := s.emailService.SendRejectionNotice(student.Email, student.DisplayName(), updated.Title, remark); err != nil {
			logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to send rejection notice email")
		}
	}

	resp := dto.NewAssignmentResponse(updated)
	return &resp, nil
}

// Forward reassigns an assignment under review to another reviewer of the
// same department. Only the current reviewer may forward, and never to
// themselves.
func (s *assignmentServiceImpl) Forward(ctx context.Context, reviewerID, assignmentID int64, req *dto.ForwardAssignmentRequest) (*dto.AssignmentResponse, error) {
	newReviewer, err := s.userRepo.GetByID(ctx, req.NewReviewerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidReviewer
		}
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if err := validateForwardTarget(newReviewer, actor.DepartmentID, reviewerID); err != nil {
		return nil, err
	}

	var note *string
	if trimmed := strings.TrimSpace(req.Note); trimmed != "" {
		note = &trimmed
	}

	var updated *models.Assignment
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignment, err := s.assignmentRepo.GetByIDForUpdate(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if !assignment.AssignedTo(reviewerID) {
			return apperrors.ErrAssignmentNotFound
		}
		if !assignment.Status.UnderReview() {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be forwarded", assignment.Status))
		}

		assignment.Status = models.StatusForwarded
		assignment.ReviewerID = &req.NewReviewerID

		if err := s.assignmentRepo.ApplyTransition(ctx, tx, assignment); err != nil {
			return err
		}
		if err := s.historyRepo.Insert(ctx, tx, &models.AssignmentHistory{
			AssignmentID: assignment.ID,
			ReviewerID:   reviewerID,
			Action:       models.ActionForwarded,
			Remark:       note,
		}); err != nil {
			return err
		}
		if err := s.notificationRepo.Insert(ctx, tx, &models.Notification{
			UserID:       req.NewReviewerID,
			AssignmentID: assignment.ID,
			Message:      fmt.Sprintf("%s forwarded \"%s\" to you for review", actor.DisplayName(), assignment.Title),
			Type:         models.NotificationForwarded,
		}); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(updated)
	return &resp, nil
}

// GetMyAssignments lists all assignments of the student, newest first
func (s *assignmentServiceImpl) GetMyAssignments(ctx context.Context, studentID int64) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, dto.NewAssignmentResponse(a))
	}
	return responses, nil
}

// GetAssignment returns one assignment if the caller may see it: the owning
// student, the current reviewer, any past actor in its history, or an admin.
func (s *assignmentServiceImpl) GetAssignment(ctx context.Context, userID int64, role models.RoleType, assignmentID int64) (*dto.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if !s.canView(ctx, assignment, userID, role) {
		return nil, apperrors.ErrAssignmentNotFound
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// GetReviewerDashboard lists the assignments currently awaiting the
// reviewer's decision, oldest submission first, with how long each has
// been pending.
func (s *assignmentServiceImpl) GetReviewerDashboard(ctx context.Context, reviewerID int64) ([]dto.PendingAssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListPendingByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending assignments: %w", err)
	}

	now := time.Now()
	responses := make([]dto.PendingAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		row := dto.PendingAssignmentResponse{AssignmentResponse: dto.NewAssignmentResponse(a)}
		if a.Student != nil {
			row.StudentName = a.Student.DisplayName()
		}
		if a.SubmittedAt != nil {
			row.DaysPending = helpers.DaysSince(*a.SubmittedAt, now)
		}
		responses = append(responses, row)
	}
	return responses, nil
}

// GetHistory returns the assignment's transition log, oldest first. Access
// follows the same rules as GetAssignment.
func (s *assignmentServiceImpl) GetHistory(ctx context.Context, userID int64, role models.RoleType, assignmentID int64) ([]dto.HistoryEntryResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, assignment, userID, role) {
		return nil, apperrors.ErrAssignmentNotFound
	}

	entries, err := s.historyRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignment history: %w", err)
	}

	responses := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, dto.NewHistoryEntryResponse(h))
	}
	return responses, nil
}

func (s *assignmentServiceImpl) canView(ctx context.Context, assignment *models.Assignment, userID int64, role models.RoleType) bool {
	if role == models.RoleAdmin {
		return true
	}
	if assignment.StudentID == userID || assignment.AssignedTo(userID) {
		return true
	}
	// Reviewers who acted on the assignment earlier keep read access.
	acted, err := s.historyRepo.HasActor(ctx, assignment.ID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("assignmentId", assignment.ID).Msg("Failed to check history access")
		return false
	}
	return acted
}

func (s *assignmentServiceImpl) getOwned(ctx context.Context, studentID, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.StudentID != studentID {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}
