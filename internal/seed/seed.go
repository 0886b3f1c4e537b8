package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/alumniconnect/internal/app/models"
	appRepos "github.com/yigit/alumniconnect/internal/app/repositories"
	pkgAuth "github.com/yigit/alumniconnect/internal/pkg/auth"
	"github.com/yigit/alumniconnect/internal/pkg/validation"
)

// AdminAccount describes the bootstrap administrator
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// CreateDefaultData creates the default admin account if it doesn't exist.
// An empty password disables seeding.
func CreateDefaultData(ctx context.Context, userRepo appRepos.IUserRepository, admin AdminAccount, lgr zerolog.Logger) error {
	if admin.Password == "" {
		lgr.Info().Msg("No admin password configured, skipping default admin creation")
		return nil
	}

	email := validation.NormalizeEmail(admin.Email)
	lgr.Info().Str("email", email).Msg("Checking/Creating default admin user...")

	_, err := userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	case !errors.Is(err, appRepos.ErrNotFound):
		return fmt.Errorf("checking admin user: %w", err)
	}

	hashedPassword, err := pkgAuth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user := &appModels.User{
		Name:         strings.TrimSpace(admin.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         appModels.RoleAdmin,
		IsApproved:   true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		// another instance won the race
		if errors.Is(err, appRepos.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	lgr.Info().Int64("adminID", user.ID).Msg("Default admin user created successfully")
	return nil
}
