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

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository] over the "user_session" table.
type sessionRepository struct {
	db Querier
}

func scanSession(row rowScanner) (models.Session, error) {
	var (
		session models.Session
		userID  sql.NullInt64
	)
	err := row.Scan(&session.ID, &userID, &session.Token, &session.CreateDate,
		&session.LastSeenDate, &session.RequestsCount, &session.LastAddress)
	if err != nil {
		return models.Session{}, err
	}
	if userID.Valid {
		id := userID.Int64
		session.UserID = &id
	}
	return session, nil
}

// CreateSession inserts a new session. CreateDate of the argument is used as
// both creation and last-seen time.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	created, err := scanSession(r.db.QueryRowContext(ctx, createSession,
		session.UserID, session.Token, session.CreateDate, session.LastAddress))
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error creating session")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Session{}, ErrSessionTokenCollision
		case pgerrcode.ForeignKeyViolation:
			return models.Session{}, ErrNoUserWasFound
		default:
			return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return created, nil
}

// TouchSession looks the session up by token and records a request: the
// last-seen time and address are replaced and requests_count grows by one.
func (r *sessionRepository) TouchSession(ctx context.Context, token, address string, now time.Time) (models.Session, error) {
	session, err := scanSession(r.db.QueryRowContext(ctx, touchSession, now, address, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.TouchSession").Msg("unexpected DB error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// DeleteSession removes the session row.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteSession, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
