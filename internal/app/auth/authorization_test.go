package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaanyildiz/assignflow/internal/app/models"
)

func TestCan(t *testing.T) {
	svc := NewAuthorizationService()

	tests := []struct {
		role       models.RoleType
		permission Permission
		want       bool
	}{
		{models.RoleStudent, PermSubmitAssignments, true},
		{models.RoleStudent, PermViewOwnAssignments, true},
		{models.RoleStudent, PermReviewAssignments, false},
		{models.RoleStudent, PermManageUsers, false},

		{models.RoleProfessor, PermReviewAssignments, true},
		{models.RoleProfessor, PermForwardAssignments, true},
		{models.RoleProfessor, PermSubmitAssignments, false},
		{models.RoleProfessor, PermManageDepartments, false},

		{models.RoleHOD, PermReviewAssignments, true},
		{models.RoleHOD, PermForwardAssignments, true},
		{models.RoleHOD, PermManageUsers, false},

		{models.RoleAdmin, PermManageDepartments, true},
		{models.RoleAdmin, PermManageUsers, true},
		{models.RoleAdmin, PermReviewAssignments, false},
		{models.RoleAdmin, PermSubmitAssignments, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+string(tt.permission), func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Can(tt.role, tt.permission))
		})
	}
}

func TestCanUnknownRole(t *testing.T) {
	svc := NewAuthorizationService()
	assert.False(t, svc.Can(models.RoleType("JANITOR"), PermViewNotifications))
}

func TestEveryRoleSeesNotifications(t *testing.T) {
	svc := NewAuthorizationService()
	for _, role := range []models.RoleType{models.RoleStudent, models.RoleProfessor, models.RoleHOD, models.RoleAdmin} {
		assert.True(t, svc.Can(role, PermViewNotifications), string(role))
	}
}
