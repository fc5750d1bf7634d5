package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

func TestListForwardRecipientsExcludesCaller(t *testing.T) {
	users := newStubUsers(
		testReviewer(9, 1, models.RoleProfessor),
		testReviewer(12, 1, models.RoleHOD),
		testReviewer(13, 1, models.RoleProfessor),
		testReviewer(20, 2, models.RoleProfessor),
		testStudent(3, 1),
	)
	svc := NewRoutingService(users)

	recipients, err := svc.ListForwardRecipients(context.Background(), 9)
	require.NoError(t, err)

	ids := make([]int64, 0, len(recipients))
	for _, r := range recipients {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{12, 13}, ids)
}

func TestListForwardRecipientsRequiresDepartment(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	svc := NewRoutingService(newStubUsers(admin))

	_, err := svc.ListForwardRecipients(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestValidateSubmitTarget(t *testing.T) {
	inactive := testReviewer(10, 1, models.RoleProfessor)
	inactive.IsActive = false

	tests := []struct {
		name     string
		reviewer *models.User
		wantErr  error
	}{
		{"active professor same department", testReviewer(9, 1, models.RoleProfessor), nil},
		{"head of department", testReviewer(12, 1, models.RoleHOD), apperrors.ErrInvalidReviewer},
		{"professor in other department", testReviewer(11, 2, models.RoleProfessor), apperrors.ErrInvalidReviewer},
		{"inactive professor", inactive, apperrors.ErrInvalidReviewer},
		{"student", testStudent(4, 1), apperrors.ErrInvalidReviewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmitTarget(tt.reviewer, deptID(1))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateForwardTarget(t *testing.T) {
	inactive := testReviewer(10, 1, models.RoleHOD)
	inactive.IsActive = false

	tests := []struct {
		name    string
		target  *models.User
		wantErr error
	}{
		{"professor same department", testReviewer(13, 1, models.RoleProfessor), nil},
		{"head same department", testReviewer(12, 1, models.RoleHOD), nil},
		{"the forwarding reviewer", testReviewer(9, 1, models.RoleProfessor), apperrors.ErrValidationFailed},
		{"professor in other department", testReviewer(20, 2, models.RoleProfessor), apperrors.ErrPermissionDenied},
		{"inactive head", inactive, apperrors.ErrInvalidReviewer},
		{"student", testStudent(4, 1), apperrors.ErrInvalidReviewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateForwardTarget(tt.target, deptID(1), 9)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
