package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Email        string     `json:"email" db:"email" example:"user@school.edu.tr"`
	Password     string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`
	LastName     string     `json:"lastName" db:"last_name" example:"Doe"`
	Role         RoleType   `json:"role" db:"role" example:"PROFESSOR"`
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"` // nil for admins
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	Department *Department `json:"department,omitempty"` // relation, no db tag
}

// DisplayName returns the user's full name as used for notifications and
// history signatures.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
