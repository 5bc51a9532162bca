package http

import (
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
)

// auth is an HTTP middleware that authenticates the session credential of
// the request.
//
// The credential is the Authorization header taken verbatim, or the session
// cookie when the header is absent. It is validated together with the
// client address by the AuthService; on success the identity is stored in
// the request context under [utils.IdentityCtxKey].
//
// Every rejection answers 403 with the same body. The reason is only logged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		identity, err := h.services.AuthService.Authenticate(ctx, credential(r), utils.ClientIP(r))
		if err != nil {
			log.Info().Err(err).Str("func", "*Handler.auth").Msg("request rejected")
			http.Error(w, msgNotAuthorized, http.StatusForbidden)
			return
		}

		ctx = utils.WithIdentity(ctx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// credential returns the presented session token or an empty string.
func credential(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return header
	}
	if cookie, err := r.Cookie(apidoc.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
