package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when creating a user whose
	// username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when no session row matches the
	// presented token or id.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionTokenCollision is returned when a freshly generated token
	// collides with an existing one.
	ErrSessionTokenCollision = errors.New("session token already exists")

	// ErrPasswordNotFound is returned when the user has no password row.
	ErrPasswordNotFound = errors.New("password was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrConnectingDatabase is returned when the pool cannot be created or
	// the initial ping fails.
	ErrConnectingDatabase = errors.New("error connecting database")

	// ErrAcquiringConnection is returned when a dedicated connection cannot
	// be taken from the pool.
	ErrAcquiringConnection = errors.New("failed to acquire connection")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
