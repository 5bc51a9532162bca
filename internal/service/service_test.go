package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-webapp-plugins/internal/mock"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"go.uber.org/mock/gomock"
)

// stubTransactor hands the same mocked repositories to every unit of work
// and counts how the work was scoped.
type stubTransactor struct {
	repos        *store.Repositories
	transactions int
	connections  int
}

func (s *stubTransactor) WithConnection(ctx context.Context, fn func(ctx context.Context, repos *store.Repositories) error) error {
	s.connections++
	return fn(ctx, s.repos)
}

func (s *stubTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *store.Repositories) error) error {
	s.transactions++
	return fn(ctx, s.repos)
}

type repoMocks struct {
	users     *mock.MockUserRepository
	sessions  *mock.MockSessionRepository
	passwords *mock.MockPasswordRepository
	tx        *stubTransactor
}

func newRepoMocks(t *testing.T) (*gomock.Controller, repoMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := repoMocks{
		users:     mock.NewMockUserRepository(ctrl),
		sessions:  mock.NewMockSessionRepository(ctrl),
		passwords: mock.NewMockPasswordRepository(ctrl),
	}
	m.tx = &stubTransactor{repos: &store.Repositories{
		Users:     m.users,
		Sessions:  m.sessions,
		Passwords: m.passwords,
	}}
	return ctrl, m
}
