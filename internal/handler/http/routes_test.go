package http

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkRoutes(t *testing.T, r chi.Routes) []string {
	t.Helper()
	var routes []string
	require.NoError(t, chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	}))
	sort.Strings(routes)
	return routes
}

func newRouteTestHandler() *Handler {
	return newTestHandler(&service.Services{
		AuthService:     &mockAuthService{},
		UserService:     &mockUserService{},
		PasswordService: &mockPasswordService{},
	})
}

func TestRegisterUserCoreRoutes(t *testing.T) {
	r := chi.NewRouter()
	fragment := newRouteTestHandler().RegisterUserCoreRoutes(r)

	assert.Equal(t, []string{
		"GET " + listUsersPath,
		"GET " + sessionInfoPath,
		"POST " + logoutPath,
	}, walkRoutes(t, r))

	require.NotNil(t, fragment.Paths.Value(listUsersPath))
	list := fragment.Paths.Value(listUsersPath).Get
	require.NotNil(t, list)
	assert.Len(t, list.Parameters, 2)
	assert.NotNil(t, list.Security)
	assert.Contains(t, fragment.Schemas, "User")
	assert.Contains(t, fragment.Schemas, "Identity")
}

func TestRegisterPasswordAuthRoutes(t *testing.T) {
	r := chi.NewRouter()
	fragment := newRouteTestHandler().RegisterPasswordAuthRoutes(r)

	assert.Equal(t, []string{
		"POST " + changePasswordPath,
		"POST " + loginPasswordPath,
	}, walkRoutes(t, r))

	login := fragment.Paths.Value(loginPasswordPath).Post
	require.NotNil(t, login)
	assert.Nil(t, login.Security, "login must be reachable without a session")
	assert.NotNil(t, fragment.Paths.Value(changePasswordPath).Post.Security)
}

func TestRegisterRoutes_IdenticalAcrossRouters(t *testing.T) {
	h := newRouteTestHandler()

	r1, r2 := chi.NewRouter(), chi.NewRouter()
	h.RegisterUserCoreRoutes(r1)
	h.RegisterPasswordAuthRoutes(r1)
	h.RegisterUserCoreRoutes(r2)
	h.RegisterPasswordAuthRoutes(r2)

	assert.Equal(t, walkRoutes(t, r1), walkRoutes(t, r2))
}

func TestFragments_MergeWithoutConflicts(t *testing.T) {
	h := newRouteTestHandler()
	r := chi.NewRouter()

	doc := apidoc.NewDocument("webapp", "test")
	err := apidoc.Merge(doc,
		h.RegisterUserCoreRoutes(r),
		h.RegisterPasswordAuthRoutes(r),
		NewHealth(&mockAppInfoService{}).RegisterRoutes(r),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, doc.Paths.Len())
}

func TestProtectedRoutesRejectAnonymousCallers(t *testing.T) {
	// an empty credential is rejected before any storage access
	h := newTestHandler(&service.Services{
		AuthService: service.NewAuthService(nil, nil, nil, logger.Nop()),
	})

	r := chi.NewRouter()
	h.RegisterUserCoreRoutes(r)
	h.RegisterPasswordAuthRoutes(r)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, listUsersPath},
		{http.MethodGet, sessionInfoPath},
		{http.MethodPost, logoutPath},
		{http.MethodPost, changePasswordPath},
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusForbidden, rr.Code, route.path)
	}
}
