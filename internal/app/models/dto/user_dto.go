package dto

import (
	"github.com/kaanyildiz/assignflow/internal/app/models"
)

// CreateUserRequest is the admin form for creating an account
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required" validate:"required,email"`
	Password     string `json:"password" binding:"required" validate:"required,min=8"`
	FirstName    string `json:"firstName" binding:"required" validate:"required,min=2,max=100"`
	LastName     string `json:"lastName" binding:"required" validate:"required,min=2,max=100"`
	Role         string `json:"role" binding:"required" validate:"required,oneof=STUDENT PROFESSOR HOD ADMIN"`
	DepartmentID *int64 `json:"departmentId,omitempty" validate:"omitempty,gt=0"`
}

// UserResponse is the standard user representation
type UserResponse struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Role         models.RoleType `json:"role"`
	DepartmentID *int64          `json:"departmentId,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// NewUserResponse converts a User model to its response DTO
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
	}
}
