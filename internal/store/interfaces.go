package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/models"
)

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx the repositories
// need. Repositories never know whether they run inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transactor runs units of work against a set of repositories bound to one
// connection or one transaction.
type Transactor interface {
	// WithConnection runs fn with repositories bound to a single pooled
	// connection.
	WithConnection(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error

	// WithTransaction runs fn inside one read-committed transaction. A
	// non-nil error or a panic from fn rolls the transaction back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, person string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	TouchUser(ctx context.Context, userID int64, now time.Time) (models.User, error)
	MarkLoggedIn(ctx context.Context, userID int64, now time.Time) (models.User, error)
	ListUsers(ctx context.Context, page models.Page) (models.PageResult[models.User], error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	TouchSession(ctx context.Context, token, address string, now time.Time) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID int64) error
}

type PasswordRepository interface {
	FindPasswordByUserID(ctx context.Context, userID int64) (models.UserPassword, error)
	UpsertPassword(ctx context.Context, password models.UserPassword) (models.UserPassword, error)
}
