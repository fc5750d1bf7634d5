package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/kaanyildiz/assignflow/internal/app/models"
	appRepos "github.com/kaanyildiz/assignflow/internal/app/repositories"
	"github.com/kaanyildiz/assignflow/internal/config"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	pkgAuth "github.com/kaanyildiz/assignflow/internal/pkg/auth"
)

// CreateDefaultData creates the default departments and the initial admin
// account on an empty database. It is idempotent: anything already present is
// left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (departments, admin account)...")
	var finalErr error

	defaults := []appModels.Department{
		{Name: "Computer Engineering", Code: "CENG"},
		{Name: "Electrical Engineering", Code: "EEE"},
		{Name: "Mechanical Engineering", Code: "ME"},
	}
	for i := range defaults {
		department := defaults[i]
		exists, err := departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code)
		if err != nil {
			lgr.Error().Err(err).Str("code", department.Code).Msg("Error checking default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}
		if err := departmentRepo.Create(ctx, &department); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", department.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Initial admin account; the password comes from the environment so a
	// deployment never ships with a fixed credential.
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@assignflow.app")
	if _, err := userRepo.GetByEmail(ctx, adminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking admin account")
			return errors.Join(finalErr, err)
		}

		adminPassword := config.GetEnv("ADMIN_PASSWORD", "admin12345")
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), pkgAuth.BcryptCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			return errors.Join(finalErr, err)
		}

		admin := &appModels.User{
			Email:     adminEmail,
			Password:  string(hashed),
			FirstName: "System",
			LastName:  "Administrator",
			Role:      appModels.RoleAdmin,
			IsActive:  true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating admin account")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
		}
	}

	return finalErr
}
