package services

import (
	"context"
	"fmt"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

// RoutingService answers who an assignment under review can be forwarded to
type RoutingService interface {
	ListForwardRecipients(ctx context.Context, reviewerID int64) ([]dto.ForwardRecipientResponse, error)
}

// routingServiceImpl implements RoutingService
type routingServiceImpl struct {
	userRepo userStore
}

// NewRoutingService creates a new RoutingService
func NewRoutingService(userRepo userStore) RoutingService {
	return &routingServiceImpl{userRepo: userRepo}
}

// ListForwardRecipients lists the active professors and heads of the
// reviewer's own department, excluding the reviewer themselves.
func (s *routingServiceImpl) ListForwardRecipients(ctx context.Context, reviewerID int64) ([]dto.ForwardRecipientResponse, error) {
	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer.DepartmentID == nil {
		return nil, apperrors.NewBadRequestError("user has no department")
	}

	users, err := s.userRepo.ListReviewersByDepartment(ctx, *reviewer.DepartmentID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing forward recipients: %w", err)
	}

	recipients := make([]dto.ForwardRecipientResponse, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, dto.ForwardRecipientResponse{
			ID:    u.ID,
			Name:  u.DisplayName(),
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return recipients, nil
}

// validateSubmitTarget checks that a user may receive a fresh submission: an
// active professor of the student's own department.
func validateSubmitTarget(reviewer *models.User, departmentID *int64) error {
	if reviewer.Role != models.RoleProfessor || !reviewer.IsActive {
		return apperrors.ErrInvalidReviewer
	}
	if departmentID == nil || reviewer.DepartmentID == nil || *reviewer.DepartmentID != *departmentID {
		return apperrors.ErrInvalidReviewer
	}
	return nil
}

// validateForwardTarget checks that a user may receive a forwarded
// assignment: an active professor or head of the forwarding reviewer's own
// department, and not the forwarding reviewer themselves.
func validateForwardTarget(target *models.User, departmentID *int64, fromID int64) error {
	if target.ID == fromID {
		return apperrors.NewValidationError("an assignment cannot be forwarded to its current reviewer")
	}
	if !target.Role.IsReviewer() || !target.IsActive {
		return apperrors.ErrInvalidReviewer
	}
	if departmentID == nil || target.DepartmentID == nil || *target.DepartmentID != *departmentID {
		return apperrors.NewForbiddenError("forward target must be in the same department")
	}
	return nil
}
