package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-webapp-plugins/internal/crypto"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

type passwordService struct {
	transactor        store.Transactor
	hasher            crypto.PasswordHasher
	minPasswordLength int
	now               func() time.Time
	logger            *logger.Logger
}

// NewPasswordService builds a PasswordService enforcing minPasswordLength
// characters on every new password.
func NewPasswordService(transactor store.Transactor, hasher crypto.PasswordHasher, minPasswordLength int, logger *logger.Logger) PasswordService {
	return &passwordService{
		transactor:        transactor,
		hasher:            hasher,
		minPasswordLength: minPasswordLength,
		now:               time.Now,
		logger:            logger,
	}
}

// SetPassword replaces the stored hash of userID. The previous hash is not
// kept.
func (s *passwordService) SetPassword(ctx context.Context, userID int64, password string) error {
	return s.transactor.WithTransaction(ctx, func(ctx context.Context, repos *store.Repositories) error {
		return s.setPassword(ctx, repos, userID, password)
	})
}

// SetUserPassword is SetPassword addressed by username.
func (s *passwordService) SetUserPassword(ctx context.Context, username, password string) error {
	return s.transactor.WithTransaction(ctx, func(ctx context.Context, repos *store.Repositories) error {
		user, err := repos.Users.FindUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return ErrNoSuchUser
			}
			return err
		}
		return s.setPassword(ctx, repos, user.ID, password)
	})
}

// ChangePassword verifies oldPassword against the stored hash of the
// authenticated user before storing newPassword.
//
// A wrong old password returns ErrInvalidCredentials.
func (s *passwordService) ChangePassword(ctx context.Context, identity models.Identity, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	// fail before any database work
	if err := s.checkLength(newPassword); err != nil {
		return err
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context, repos *store.Repositories) error {
		stored, err := repos.Passwords.FindPasswordByUserID(ctx, identity.User.ID)
		if err != nil {
			return err
		}
		if err = s.hasher.Verify(stored.PasswordHash, oldPassword); err != nil {
			return err
		}
		return s.setPassword(ctx, repos, identity.User.ID, newPassword)
	})

	switch {
	case err == nil:
		log.Info().Int64("user_id", identity.User.ID).Msg("password changed")
		return nil
	case errors.Is(err, store.ErrPasswordNotFound), errors.Is(err, crypto.ErrPasswordMismatch):
		return ErrInvalidCredentials
	default:
		log.Err(err).Str("func", "*passwordService.ChangePassword").Msg("password change failed")
		return err
	}
}

func (s *passwordService) setPassword(ctx context.Context, repos *store.Repositories, userID int64, password string) error {
	if err := s.checkLength(password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	_, err = repos.Passwords.UpsertPassword(ctx, models.UserPassword{
		UserID:          userID,
		LastUpdatedDate: s.now(),
		PasswordHash:    hash,
	})
	return err
}

func (s *passwordService) checkLength(password string) error {
	if utf8.RuneCountInString(password) < s.minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, s.minPasswordLength)
	}
	return nil
}
