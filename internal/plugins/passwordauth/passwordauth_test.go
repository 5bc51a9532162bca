package passwordauth

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-webapp-plugins/internal/config"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, body string) (Config, error) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte(body), 0o600))

	meta, err := NewMetadata(dir)
	require.NoError(t, err)

	cell, err := meta.(Metadata).LoadConfig()
	if err != nil {
		return Config{}, err
	}
	return cell.Get()
}

func TestConfig(t *testing.T) {
	t.Setenv("WEBAPP_TEST_DB", "postgres://localhost/webapp")

	tests := []struct {
		name      string
		body      string
		wantMin   int
		wantError bool
	}{
		{name: "defaults", body: "database_url: {env: WEBAPP_TEST_DB}\n", wantMin: 8},
		{name: "explicit minimum", body: "min_password_length: 12\ndatabase_url: postgres://localhost/webapp\n", wantMin: 12},
		{name: "negative minimum", body: "min_password_length: -1\ndatabase_url: postgres://localhost/webapp\n", wantError: true},
		{name: "missing database", body: "min_password_length: 10\n", wantError: true},
		{name: "unknown field", body: "database_url: x\nmax_password_length: 3\n", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(t, tt.body)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, cfg.MinPasswordLength)
			assert.Equal(t, int32(10), cfg.MaxConnections)

			url, err := cfg.DatabaseURL.Reveal(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "postgres://localhost/webapp", url)
		})
	}
}

func TestMetadata_Dump(t *testing.T) {
	dir := t.TempDir()
	body := "min_password_length: 10\ndatabase_url: {env: WEBAPP_DB}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte(body), 0o600))

	meta, err := NewMetadata(dir)
	require.NoError(t, err)

	dump, err := meta.ConfigDump()
	require.NoError(t, err)
	assert.Contains(t, dump, "min_password_length: 10")
	assert.Contains(t, dump, "env: WEBAPP_DB")
	assert.NotContains(t, dump, config.RedactedMarker)

	assert.Contains(t, meta.ConfigDocumentation(), "min_password_length")
}

func TestInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inst := NewInstance(store.NewPoolFromDB(db, 1, logger.Nop()), 8, logger.Nop())

	r := chi.NewRouter()
	require.NotNil(t, inst.RegisterRoutes(r))

	var routes []string
	require.NoError(t, chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	}))
	assert.ElementsMatch(t, []string{
		"POST /api/v1/user/login/password",
		"POST /api/v1/user/password",
	}, routes)

	// the minimum length is enforced inside the transaction, before hashing
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = inst.Services().PasswordService.SetPassword(context.Background(), 1, "short")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)
	assert.NoError(t, mock.ExpectationsWereMet())
}
