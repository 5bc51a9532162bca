package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing hash
// strings and checks plaintexts against them.
type PasswordHasher interface {
	// Hash derives a hash from password with a freshly generated salt and
	// returns it in PHC string format.
	Hash(password string) (string, error)

	// Verify parses encoded and compares it against password. Any parse
	// failure or mismatch returns ErrPasswordMismatch.
	Verify(encoded, password string) error
}

// TokenGenerator mints opaque session tokens.
type TokenGenerator interface {
	// GenerateSessionToken returns a random alphanumeric token of
	// models.SessionTokenLength characters.
	GenerateSessionToken() (string, error)
}
