package dto

// RegisterRequest is the self-service student registration form. Staff and
// admin accounts are created by an administrator.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required" validate:"required,email"`
	Password     string `json:"password" binding:"required" validate:"required,min=8"`
	FirstName    string `json:"firstName" binding:"required" validate:"required,min=2,max=100"`
	LastName     string `json:"lastName" binding:"required" validate:"required,min=2,max=100"`
	DepartmentID int64  `json:"departmentId" binding:"required" validate:"required,gt=0"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

// LogoutRequest revokes the given refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}
