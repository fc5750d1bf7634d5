package auth

import (
	"github.com/kaanyildiz/assignflow/internal/app/models"
)

// Permission is a capability a role may hold. Routes and services gate on
// permissions rather than comparing role strings in place.
type Permission string

const (
	PermSubmitAssignments  Permission = "assignments:submit"
	PermReviewAssignments  Permission = "assignments:review"
	PermForwardAssignments Permission = "assignments:forward"
	PermViewOwnAssignments Permission = "assignments:view-own"
	PermManageDepartments  Permission = "departments:manage"
	PermManageUsers        Permission = "users:manage"
	PermViewNotifications  Permission = "notifications:view"
)

// rolePermissions is the single source of truth for what each role may do.
var rolePermissions = map[models.RoleType]map[Permission]struct{}{
	models.RoleStudent: permSet(
		PermSubmitAssignments,
		PermViewOwnAssignments,
		PermViewNotifications,
	),
	models.RoleProfessor: permSet(
		PermReviewAssignments,
		PermForwardAssignments,
		PermViewNotifications,
	),
	models.RoleHOD: permSet(
		PermReviewAssignments,
		PermForwardAssignments,
		PermViewNotifications,
	),
	models.RoleAdmin: permSet(
		PermManageDepartments,
		PermManageUsers,
		PermViewNotifications,
	),
}

func permSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// AuthorizationService answers permission checks for roles
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// Can reports whether the role holds the permission
func (s *AuthorizationService) Can(role models.RoleType, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}
