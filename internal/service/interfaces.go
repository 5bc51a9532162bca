package service

import (
	"context"

	"github.com/MKhiriev/go-webapp-plugins/models"
)

// AuthService validates session credentials and opens and closes sessions.
type AuthService interface {
	// Authenticate resolves a presented session token into the caller's
	// identity and records the request on the session and its user.
	Authenticate(ctx context.Context, token, address string) (models.Identity, error)

	// Login checks username and password and mints a new session bound to
	// the user and the caller's address.
	Login(ctx context.Context, username, password, address string) (models.Session, error)

	// Logout removes the session of identity.
	Logout(ctx context.Context, identity models.Identity) error
}

type UserService interface {
	CreateUser(ctx context.Context, user models.NewUser) (models.User, error)
	ListUsers(ctx context.Context, page models.Page) (models.PageResult[models.User], error)
}

// PasswordService manages the stored password hashes.
type PasswordService interface {
	SetPassword(ctx context.Context, userID int64, password string) error
	SetUserPassword(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, identity models.Identity, oldPassword, newPassword string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
