package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/models"
	"github.com/jackc/pgerrcode"
)

type passwordRepository struct {
	db Querier
}

func scanPassword(row rowScanner) (models.UserPassword, error) {
	var p models.UserPassword
	if err := row.Scan(&p.ID, &p.UserID, &p.LastUpdatedDate, &p.PasswordHash); err != nil {
		return models.UserPassword{}, err
	}
	return p, nil
}

// FindPasswordByUserID returns the password row of the user, or
// [ErrPasswordNotFound] when the user never had a password set.
func (r *passwordRepository) FindPasswordByUserID(ctx context.Context, userID int64) (models.UserPassword, error) {
	p, err := scanPassword(r.db.QueryRowContext(ctx, findPasswordByUserID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserPassword{}, ErrPasswordNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*passwordRepository.FindPasswordByUserID").Msg("unexpected DB error")
		return models.UserPassword{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return p, nil
}

// UpsertPassword stores the hash, replacing any previous one of the same
// user.
func (r *passwordRepository) UpsertPassword(ctx context.Context, password models.UserPassword) (models.UserPassword, error) {
	p, err := scanPassword(r.db.QueryRowContext(ctx, upsertPassword,
		password.UserID, password.LastUpdatedDate, password.PasswordHash))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*passwordRepository.UpsertPassword").Msg("error saving password")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.UserPassword{}, ErrNoUserWasFound
		default:
			return models.UserPassword{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return p, nil
}
