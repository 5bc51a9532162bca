// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, client address resolution and request ids.
package utils

import (
	"context"

	"github.com/MKhiriev/go-webapp-plugins/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authenticated
// [models.Identity] is stored for the rest of the request.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity.
//
// Returns ok == false when the request did not pass through the
// authentication middleware.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}

// SecureCookiesCtxKey is the key under which the host stores whether
// session cookies are issued with the Secure attribute.
var SecureCookiesCtxKey = contextKey("secure_cookies")

// WithSecureCookies returns a copy of ctx carrying the cookie policy.
func WithSecureCookies(ctx context.Context, secure bool) context.Context {
	return context.WithValue(ctx, SecureCookiesCtxKey, secure)
}

// SecureCookiesFromContext reports the cookie policy, false when unset.
func SecureCookiesFromContext(ctx context.Context) bool {
	secure, _ := ctx.Value(SecureCookiesCtxKey).(bool)
	return secure
}
