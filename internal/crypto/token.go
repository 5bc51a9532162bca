package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-webapp-plugins/models"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// rejectAbove is the largest multiple of len(tokenAlphabet) that fits in a
// byte; bytes at or above it are discarded to keep the distribution uniform.
const rejectAbove = 256 - 256%len(tokenAlphabet)

type tokenGenerator struct {
	random io.Reader
	length int
}

// NewTokenGenerator returns a [TokenGenerator] reading from crypto/rand.
func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{random: rand.Reader, length: models.SessionTokenLength}
}

// GenerateSessionToken implements [TokenGenerator].
func (g *tokenGenerator) GenerateSessionToken() (string, error) {
	token := make([]byte, 0, g.length)
	buf := make([]byte, g.length)

	for len(token) < g.length {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneratingToken, err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			token = append(token, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(token) == g.length {
				break
			}
		}
	}

	return string(token), nil
}
