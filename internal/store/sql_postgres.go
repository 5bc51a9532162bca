package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool is a plugin-owned PostgreSQL connection pool. The pgx pool manages the
// connections; database/sql sits on top of it for repositories and migrations.
type Pool struct {
	db                 *sql.DB
	pgx                *pgxpool.Pool
	errorClassificator ErrorClassificator
	attempts           int
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed transaction may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// NewPool connects to the database described by cfg. The connection is
// verified with a ping bounded by cfg.ConnectTimeout.
func NewPool(ctx context.Context, cfg Config, log *logger.Logger) (*Pool, error) {
	dsn, err := cfg.DatabaseURL.Reveal(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewPool").Msg("error resolving database url")
		return nil, fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}

	pgxCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		// the parse error may echo the url, keep it out of the log
		log.Error().Str("func", "NewPool").Msg("error parsing database url")
		return nil, fmt.Errorf("%w: invalid database url", ErrConnectingDatabase)
	}
	pgxCfg.MaxConns = cfg.MaxConnections
	pgxCfg.MinConns = cfg.MinConnections

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, pgxCfg)
	if err != nil {
		log.Err(err).Str("func", "NewPool").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}

	if err = pool.Ping(connectCtx); err != nil {
		pool.Close()
		log.Err(err).Str("func", "NewPool").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}
	log.Info().Str("func", "NewPool").
		Int32("max_connections", cfg.MaxConnections).
		Msg("connected to database successfully")

	return &Pool{
		db:                 stdlib.OpenDBFromPool(pool),
		pgx:                pool,
		errorClassificator: NewPostgresErrorClassifier(),
		attempts:           cfg.TransactionAttempts,
		logger:             log,
	}, nil
}

// NewPoolFromDB wraps an already opened *sql.DB.
func NewPoolFromDB(db *sql.DB, attempts int, log *logger.Logger) *Pool {
	if attempts < 1 {
		attempts = 1
	}
	return &Pool{
		db:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		attempts:           attempts,
		logger:             log,
	}
}

// DB returns the underlying *sql.DB.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Ping verifies the database is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Migrate applies the embedded migration set to this pool's database.
func (p *Pool) Migrate(ctx context.Context, set migrations.Set) error {
	return migrations.Migrate(ctx, p.db, set, p.logger)
}

// Close releases every pooled connection.
func (p *Pool) Close() error {
	err := p.db.Close()
	if p.pgx != nil {
		p.pgx.Close()
	}
	return err
}

// WithConnection implements [Transactor].
func (p *Pool) WithConnection(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Pool.WithConnection").Msg("error acquiring connection")
		return fmt.Errorf("%w: %w", ErrAcquiringConnection, err)
	}
	defer conn.Close()

	return fn(ctx, NewRepositories(conn))
}

// WithTransaction implements [Transactor]. Transactions failing with a
// retryable database error are replayed up to the configured attempts.
func (p *Pool) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		err = p.runTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		if p.errorClassificator.Classify(err) != Retryable || ctx.Err() != nil {
			return err
		}
		log.Warn().Err(err).Str("func", "*Pool.WithTransaction").
			Int("attempt", attempt).
			Msg("retrying transaction")
	}
	return err
}

func (p *Pool) runTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) (err error) {
	log := logger.FromContext(ctx)

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		log.Err(err).Str("func", "*Pool.runTransaction").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(ctx, NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Err(rbErr).Str("func", "*Pool.runTransaction").Msg("error rolling back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*Pool.runTransaction").Msg("error commiting transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// OpenMigrated connects a pool and brings set up to date. The pool is
// closed again when the migrations fail.
func OpenMigrated(ctx context.Context, cfg Config, set migrations.Set, log *logger.Logger) (*Pool, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = pool.Migrate(ctx, set); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
