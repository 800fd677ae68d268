package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/ozgur/rollcall/internal/app/models"
	appRepos "github.com/ozgur/rollcall/internal/app/repositories"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// defaultUsers are created on first startup so a fresh install has one
// account per role to work with. Tokens are issued by the identity provider;
// these rows give its subjects something to resolve to.
var defaultUsers = []appModels.User{
	{Email: "faculty@rollcall.app", FirstName: "Default", LastName: "Faculty", RoleType: appModels.RoleFaculty},
	{Email: "intern@rollcall.app", FirstName: "Default", LastName: "Intern", RoleType: appModels.RoleFacultyIntern},
	{Email: "student@rollcall.app", FirstName: "Default", LastName: "Student", RoleType: appModels.RoleStudent},
}

const defaultPassword = "changeme"

// CreateDefaultData inserts the default users if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default users...")
	var finalErr error

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, user := range defaultUsers {
		user.Password = string(hash)
		user.IsActive = true

		id, err := userRepo.Create(ctx, &user)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", user.Email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Int64("userId", id).Str("email", user.Email).Str("role", string(user.RoleType)).Msg("Default user created")
	}

	return finalErr
}
