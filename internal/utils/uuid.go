package utils

import "github.com/google/uuid"

// NewRequestID returns a time-ordered UUIDv7 string used to correlate the
// log lines of one request, falling back to a random UUIDv4.
func NewRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
