package model

import "time"

const (
	// AdminRole is the single role the storefront knows about.
	AdminRole = "admin"

	// AdminEmail identifies the admin principal in session tokens.
	AdminEmail = "admin@nexavault.com"
)

// Session is the ephemeral admin principal carried in a signed cookie token.
// It is never persisted; validity is entirely self-contained in the token.
type Session struct {
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the session's expiry has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
