package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/repositories"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

// DepartmentService defines the interface for department management
type DepartmentService interface {
	GetAllDepartments(ctx context.Context) ([]*models.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

// departmentServiceImpl implements DepartmentService
type departmentServiceImpl struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) DepartmentService {
	return &departmentServiceImpl{departmentRepo: departmentRepo}
}

// GetAllDepartments lists all departments, ordered by name
func (s *departmentServiceImpl) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return departments, nil
}

// GetDepartmentByID retrieves one department
func (s *departmentServiceImpl) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// CreateDepartment creates a department; name and code must be unique
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code)
	if err != nil {
		return nil, fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDepartmentAlreadyExists
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// UpdateDepartment renames a department or changes its code
func (s *departmentServiceImpl) UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	department.Name = strings.TrimSpace(req.Name)
	department.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// DeleteDepartment removes a department with no members
func (s *departmentServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
