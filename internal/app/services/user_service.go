package services

import (
	"context"
	"fmt"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/repositories"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	"github.com/kaanyildiz/assignflow/internal/pkg/auth"
)

// UserService defines the interface for admin account management
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, departmentID *int64, role *models.RoleType) ([]dto.UserResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, id int64, active bool) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	tokenRepo      *repositories.TokenRepository
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	departmentRepo *repositories.DepartmentRepository,
	tokenRepo *repositories.TokenRepository,
) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		tokenRepo:      tokenRepo,
	}
}

// CreateUser creates an account. Every role except ADMIN requires a
// department.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role")
	}

	if role == models.RoleAdmin {
		if req.DepartmentID != nil {
			return nil, apperrors.NewValidationError("admin accounts do not belong to a department")
		}
	} else {
		if req.DepartmentID == nil {
			return nil, apperrors.NewValidationError("a department is required for this role")
		}
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Password:     hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers lists accounts, optionally filtered by department and role
func (s *userServiceImpl) ListUsers(ctx context.Context, departmentID *int64, role *models.RoleType) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx, departmentID, role)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses, nil
}

// GetUserByID retrieves one account
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// SetUserActive enables or disables an account. Disabling also revokes the
// account's refresh tokens so open sessions cannot be extended.
func (s *userServiceImpl) SetUserActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	if !active {
		if err := s.tokenRepo.RevokeAllForUser(ctx, id); err != nil {
			return fmt.Errorf("error revoking tokens: %w", err)
		}
	}
	return nil
}
