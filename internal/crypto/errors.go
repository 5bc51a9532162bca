package crypto

import "errors"

var (
	// ErrPasswordMismatch is returned by Verify for a wrong password and for
	// any stored hash that cannot be parsed.
	ErrPasswordMismatch = errors.New("password does not match")
	// ErrMalformedHash describes why a stored hash could not be parsed. It is
	// always wrapped together with ErrPasswordMismatch.
	ErrMalformedHash = errors.New("malformed password hash")

	ErrGeneratingSalt  = errors.New("failed to generate salt")
	ErrGeneratingToken = errors.New("failed to generate session token")
)
