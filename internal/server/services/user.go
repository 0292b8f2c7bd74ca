// Package services contains the server-side business logic. This file
// implements UserService: registration, login, profile reads and updates,
// and password changes, including every credential and uniqueness invariant.
package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// errInvalidCredentials is shared by the unknown-email and wrong-password
// branches of Login, so both are externally indistinguishable.
var errInvalidCredentials = common.WithMessage(common.ErrorUnauthorized, "Invalid credentials.")

// UserService provides account operations over the users repository.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// normalizeEmail canonicalizes an address for the case-insensitive uniqueness
// invariant. All lookups and writes go through this.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register creates an account and returns it with a freshly issued token.
// The uniqueness check and the insert run in one transaction; the unique index
// on lower(email) backs up the check under concurrent registrations.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, "", common.WithMessage(common.ErrorValidation, "All fields are required.")
	}
	if !validEmail(email) {
		return nil, "", common.WithMessage(common.ErrorValidation, "Invalid email.")
	}
	if len(password) < minPasswordLength {
		return nil, "", common.WithMessage(common.ErrorValidation, "Password must have at least 8 characters.")
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.WithMessage(common.ErrorAlreadyExists, "User already exists.")
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		user, err = repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
		if errors.Is(err, common.ErrorAlreadyExists) {
			// lost the race to the unique index; same outcome as the check
			return common.WithMessage(common.ErrorAlreadyExists, "User already exists.")
		}
		return err
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials and returns the account with a new token.
// A missing account and a wrong password produce the identical failure.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", common.WithMessage(common.ErrorValidation, "Email or Password missing.")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", errInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// GetByID resolves an account id, for the session gate and GET /me.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes name and email. The conflict check excludes the
// principal and runs in the same transaction as the update, so a failure
// branch can never fall through into the write.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || !validEmail(email) {
		return nil, common.WithMessage(common.ErrorValidation, "Invalid name or email.")
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.EmailTaken(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return common.WithMessage(common.ErrorAlreadyExists, "Email already in use by another account")
		}

		user, err = repo.UpdateProfile(ctx, id, name, email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.WithMessage(common.ErrorNotFound, "User not found")
		case errors.Is(err, common.ErrorAlreadyExists):
			return common.WithMessage(common.ErrorAlreadyExists, "Email already in use by another account")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword verifies the current password and stores a new hash.
// Existing tokens stay valid; no re-issue happens here.
func (s *UserService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {

	if currentPassword == "" || newPassword == "" || len(newPassword) < minPasswordLength {
		return common.WithMessage(common.ErrorValidation, "Password invalid or too short (min 8 characters)")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.WithMessage(common.ErrorNotFound, "User not found")
		}
		return err
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return common.WithMessage(common.ErrorUnauthorized, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return repo.UpdatePassword(ctx, id, hash)
}
