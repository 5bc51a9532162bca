package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/crypto"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

// authService is the concrete implementation of AuthService.
// Every operation runs inside one transaction of the plugin's pool, so the
// session row and the user row are always updated together.
type authService struct {
	// transactor opens the transactions the repositories run in.
	transactor store.Transactor

	// hasher verifies presented passwords against stored hashes.
	hasher crypto.PasswordHasher

	// tokens mints new session tokens on login.
	tokens crypto.TokenGenerator

	// now is the clock used for last-seen bookkeeping.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over transactor.
func NewAuthService(transactor store.Transactor, hasher crypto.PasswordHasher, tokens crypto.TokenGenerator, logger *logger.Logger) AuthService {
	return &authService{
		transactor: transactor,
		hasher:     hasher,
		tokens:     tokens,
		now:        time.Now,
		logger:     logger,
	}
}

// Authenticate validates token for a request coming from address.
//
// The session row is looked up by exact token match and its last-seen time,
// address and request counter are updated. A session without an owning user
// is rejected with ErrAnonymousSession. Otherwise the owning user's
// last-seen time is updated and the pair is returned.
//
// Returns:
//   - ErrNoCredential if token is empty.
//   - ErrNoClientAddress if address is empty; no database work is done.
//   - ErrInvalidSession if no session carries token.
//   - ErrAnonymousSession for a session without a user.
//   - ErrAuthenticationFailed wrapping any database failure.
func (a *authService) Authenticate(ctx context.Context, token, address string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Identity{}, ErrNoCredential
	}
	if address == "" {
		log.Warn().Str("func", "*authService.Authenticate").Msg("client address could not be resolved")
		return models.Identity{}, ErrNoClientAddress
	}

	var identity models.Identity
	err := a.transactor.WithTransaction(ctx, func(ctx context.Context, repos *store.Repositories) error {
		now := a.now()

		session, err := repos.Sessions.TouchSession(ctx, token, address, now)
		if err != nil {
			return err
		}
		if !session.IsAuthenticated() {
			return ErrAnonymousSession
		}

		user, err := repos.Users.TouchUser(ctx, *session.UserID, now)
		if err != nil {
			return err
		}

		identity = models.Identity{User: user, Session: session}
		return nil
	})

	switch {
	case err == nil:
		return identity, nil
	case errors.Is(err, ErrAnonymousSession):
		log.Info().Str("func", "*authService.Authenticate").Msg("anonymous session presented as credential")
		return models.Identity{}, ErrAnonymousSession
	case errors.Is(err, store.ErrSessionNotFound):
		log.Info().Str("func", "*authService.Authenticate").Msg("unknown session token")
		return models.Identity{}, ErrInvalidSession
	default:
		log.Err(err).Str("func", "*authService.Authenticate").Msg("session validation failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
}

// Login checks the password of username and opens a new session.
//
// Lookup, verification, login bookkeeping and session creation share one
// transaction. Bookkeeping only happens after the password matched, and no
// session exists unless every step succeeded.
//
// A missing user, a missing password and a wrong password all return
// ErrInvalidCredentials after one password derivation each. Other failures are wrapped in ErrLoginFailed.
func (a *authService) Login(ctx context.Context, username, password, address string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	err := a.transactor.WithTransaction(ctx, func(ctx context.Context, repos *store.Repositories) error {
		user, err := repos.Users.FindUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				a.burnVerify(password)
			}
			return err
		}

		stored, err := repos.Passwords.FindPasswordByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrPasswordNotFound) {
				a.burnVerify(password)
			}
			return err
		}

		if err = a.hasher.Verify(stored.PasswordHash, password); err != nil {
			return err
		}

		now := a.now()
		if _, err = repos.Users.MarkLoggedIn(ctx, user.ID, now); err != nil {
			return err
		}

		token, err := a.tokens.GenerateSessionToken()
		if err != nil {
			return err
		}

		session, err = repos.Sessions.CreateSession(ctx, models.Session{
			UserID:      &user.ID,
			Token:       token,
			CreateDate:  now,
			LastAddress: address,
		})
		return err
	})

	switch {
	case err == nil:
		log.Info().Str("func", "*authService.Login").Int64("session_id", session.ID).Msg("user logged in")
		return session, nil
	case errors.Is(err, store.ErrNoUserWasFound),
		errors.Is(err, store.ErrPasswordNotFound),
		errors.Is(err, crypto.ErrPasswordMismatch):
		log.Info().Err(err).Str("func", "*authService.Login").Msg("invalid credentials")
		return models.Session{}, ErrInvalidCredentials
	default:
		log.Err(err).Str("func", "*authService.Login").Msg("login failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
}

// burnVerify runs a verification bound to fail so that a login for a missing
// account takes as long as one with a wrong password.
func (a *authService) burnVerify(password string) {
	_ = a.hasher.Verify(crypto.DecoyHash, password)
}

// Logout deletes the session the identity was authenticated with.
//
// A session deleted concurrently returns ErrInvalidSession. Database
// failures are wrapped in ErrLogoutFailed.
func (a *authService) Logout(ctx context.Context, identity models.Identity) error {
	err := a.transactor.WithConnection(ctx, func(ctx context.Context, repos *store.Repositories) error {
		return repos.Sessions.DeleteSession(ctx, identity.Session.ID)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrSessionNotFound):
		logger.FromContext(ctx).Info().Str("func", "*authService.Logout").Msg("session already gone")
		return ErrInvalidSession
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrLogoutFailed, err)
	}
}
