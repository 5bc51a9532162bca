// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL migration sets owned by plugins and
// applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed user_core/*.sql user_password_auth/*.sql
var embedMigrations embed.FS

// Set is one independently versioned group of migrations. Every set keeps its
// applied versions in its own table so plugins can share a database.
type Set struct {
	Name  string
	Dir   string
	Table string
}

var (
	UserCore = Set{
		Name:  "user_core",
		Dir:   "user_core",
		Table: "goose_user_core_version",
	}
	UserPasswordAuth = Set{
		Name:  "user_password_auth",
		Dir:   "user_password_auth",
		Table: "goose_user_password_auth_version",
	}
)

// goose keeps its settings in package globals
var gooseMu sync.Mutex

// Migrate brings db up to the latest version of set.
func Migrate(ctx context.Context, db *sql.DB, set Set, log *logger.Logger) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{log: log.WithRole("migrations")})
	goose.SetTableName(set.Table)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, set.Dir); err != nil {
		return fmt.Errorf("migration error in set %s: %w", set.Name, err)
	}

	log.Info().Str("func", "migrations.Migrate").Str("set", set.Name).Msg("migrations applied")
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log *logger.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info().Msgf(format, args...)
}

// Fatalf logs only; goose returns the error to Migrate anyway.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error().Msgf(format, args...)
}
