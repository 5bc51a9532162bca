package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-webapp-plugins/internal/config"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, attempts int) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPoolFromDB(db, attempts, logger.Nop()), mock
}

func TestWithTransaction_Commit(t *testing.T) {
	pool, mock := newTestPool(t, 1)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_session`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		return repos.Sessions.DeleteSession(ctx, 1)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	pool, mock := newTestPool(t, 3)
	sentinel := errors.New("stop")

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		calls++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls, "non-retryable errors must not be replayed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	pool, mock := newTestPool(t, 1)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
			panic("kaboom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RetriesSerializationFailure(t *testing.T) {
	pool, mock := newTestPool(t, 3)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_session`).WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_session`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	calls := 0
	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		calls++
		return repos.Sessions.DeleteSession(ctx, 1)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_GivesUpAfterAttempts(t *testing.T) {
	pool, mock := newTestPool(t, 2)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		calls++
		return pgError(pgerrcode.DeadlockDetected)
	})
	require.Error(t, err)
	assert.Equal(t, Retryable, NewPostgresErrorClassifier().Classify(err))
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	pool, mock := newTestPool(t, 1)

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		t.Fatal("fn must not run")
		return nil
	})
	require.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestWithTransaction_CommitFailure(t *testing.T) {
	pool, mock := newTestPool(t, 1)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("lost"))

	err := pool.WithTransaction(context.Background(), func(ctx context.Context, repos *Repositories) error {
		return nil
	})
	require.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestWithConnection(t *testing.T) {
	pool, mock := newTestPool(t, 1)
	now := time.Now()

	mock.ExpectQuery(`FROM user_password`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(passwordRowColumns).AddRow(1, 2, now, "h"))

	err := pool.WithConnection(context.Background(), func(ctx context.Context, repos *Repositories) error {
		p, err := repos.Passwords.FindPasswordByUserID(ctx, 2)
		if err != nil {
			return err
		}
		assert.Equal(t, "h", p.PasswordHash)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClassification
	}{
		{pgerrcode.SerializationFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
		{"XX000", NonRetryable},
	}

	c := NewPostgresErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(pgError(tt.code)))
		})
	}

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}

func TestConfigDefaultsAndValidation(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, int32(10), cfg.MaxConnections)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 3, cfg.TransactionAttempts)
	require.Error(t, cfg.Validate(), "database_url is required")

	cfg.DatabaseURL = config.Literal("postgres://localhost/webapp")
	require.NoError(t, cfg.Validate())

	cfg.MinConnections = 11
	require.Error(t, cfg.Validate())
}
