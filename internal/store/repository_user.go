package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It works against the "user" table through whatever [Querier] it was bound
// to.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db Querier
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (models.User, error) {
	var (
		user     models.User
		lastSeen sql.NullTime
	)
	dest := append([]any{&user.ID, &user.CreateDate, &lastSeen, &user.LoginCount, &user.Username, &user.Person}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		user.LastSeenDate = &t
	}
	return user, nil
}

// CreateUser persists a new user record and returns it with the
// server-assigned fields (ID, CreateDate, LoginCount).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped with [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, username, person string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, createUser, username, person))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return user, nil
}

// FindUserByUsername retrieves the user whose username matches exactly.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped with [ErrExecutingQuery].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByUsername, username))
	if err != nil {
		return models.User{}, userLookupError(ctx, "*userRepository.FindUserByUsername", err)
	}

	return user, nil
}

// TouchUser moves last_seen_date of the user to now.
func (r *userRepository) TouchUser(ctx context.Context, userID int64, now time.Time) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, touchUser, now, userID))
	if err != nil {
		return models.User{}, userLookupError(ctx, "*userRepository.TouchUser", err)
	}

	return user, nil
}

// MarkLoggedIn records a successful login: login_count grows by one and
// last_seen_date moves to now.
func (r *userRepository) MarkLoggedIn(ctx context.Context, userID int64, now time.Time) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, markUserLoggedIn, now, userID))
	if err != nil {
		return models.User{}, userLookupError(ctx, "*userRepository.MarkLoggedIn", err)
	}

	return user, nil
}

// listPrealloc caps the up-front allocation of a page; larger pages grow.
const listPrealloc = 64

// ListUsers returns one page of users ordered by id together with the total
// number of users.
func (r *userRepository) ListUsers(ctx context.Context, page models.Page) (models.PageResult[models.User], error) {
	log := logger.FromContext(ctx)

	query, args, err := listUsersQuery(page.Limit(), page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return models.PageResult[models.User]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error executing query")
		return models.PageResult[models.User]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := models.PageResult[models.User]{Items: make([]models.User, 0, min(page.Limit(), listPrealloc))}
	for rows.Next() {
		user, err := scanUser(rows, &result.Total)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning rows")
			return models.PageResult[models.User]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result.Items = append(result.Items, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating rows")
		return models.PageResult[models.User]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	// a page past the end carries no window count
	if len(result.Items) == 0 {
		if err = r.db.QueryRowContext(ctx, countUsers).Scan(&result.Total); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
			return models.PageResult[models.User]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return result, nil
}

func userLookupError(ctx context.Context, fn string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoUserWasFound
	}
	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("unexpected DB error")
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
