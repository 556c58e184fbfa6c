package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database
// authentication. The token stands in for the password when connecting.
type TokenProvider interface {
	// GetToken acquires a short-lived authentication token.
	// Returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must NOT include secrets.
	String() string
}
