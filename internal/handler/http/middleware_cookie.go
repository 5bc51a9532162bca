package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
)

// SecureCookies makes the session cookies issued below it carry the Secure
// attribute when secure is set.
func SecureCookies(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.WithSecureCookies(r.Context(), secure)))
		})
	}
}

func sessionCookie(r *http.Request, token string) *http.Cookie {
	return &http.Cookie{
		Name:     apidoc.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   utils.SecureCookiesFromContext(r.Context()),
		SameSite: http.SameSiteLaxMode,
	}
}

// expiredSessionCookie tells the browser to drop the session cookie.
func expiredSessionCookie(r *http.Request) *http.Cookie {
	c := sessionCookie(r, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
