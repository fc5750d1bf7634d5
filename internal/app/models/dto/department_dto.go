package dto

// CreateDepartmentRequest creates a new department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Code string `json:"code" binding:"required" validate:"required,min=2,max=10"`
}

// UpdateDepartmentRequest updates an existing department
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Code string `json:"code" binding:"required" validate:"required,min=2,max=10"`
}
