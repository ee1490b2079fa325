// Package auth gates the admin surface. A single configured secret maps to a
// single "admin" principal; there are no user accounts and no server-side
// session state.
package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nexavault/storefront/internal/config"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/session"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the session cookie set on successful login.
	CookieName = "session"

	// SessionTTL is the fixed lifetime of an issued admin session.
	SessionTTL = 24 * time.Hour
)

// ErrInvalidPassword is returned by Login when the password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// Service issues and validates admin sessions via the session codec.
type Service struct {
	admin config.Admin
	codec *session.Codec
}

// NewService creates an auth Service from the admin configuration.
func NewService(admin config.Admin) *Service {
	return &Service{
		admin: admin,
		codec: session.NewCodec(admin.SessionSecret),
	}
}

// Login verifies the submitted password and issues a signed session token.
// When a bcrypt hash is configured it takes precedence; otherwise the plain
// secret is compared in constant time.
func (s *Service) Login(password string) (string, time.Time, error) {
	if !s.verifyPassword(password) {
		return "", time.Time{}, ErrInvalidPassword
	}

	expires := time.Now().Add(SessionTTL)
	token, err := s.codec.Encode(model.Session{
		Email:     model.AdminEmail,
		Role:      model.AdminRole,
		ExpiresAt: expires,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

func (s *Service) verifyPassword(password string) bool {
	if s.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.admin.Password), []byte(password)) == 1
}

// SessionFromRequest reads and decodes the session cookie. It returns nil on
// any failure: missing cookie, invalid or expired token. It never returns an
// error, this is the single gate used by all admin-only operations.
func (s *Service) SessionFromRequest(r *http.Request) *model.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := s.codec.Decode(cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrExpiredToken) {
			slog.Debug("session cookie rejected", slog.Any("err", err))
		}
		return nil
	}
	if sess.Role != model.AdminRole || sess.Expired() {
		return nil
	}
	return sess
}

// SessionCookie builds the HTTP-only session cookie for an issued token.
func SessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session.
// Logout is purely client-side: a captured token stays cryptographically valid
// until its natural expiry.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// IsBcryptHash reports whether the configured secret looks like a bcrypt hash.
// Used at startup to warn when a plain password is configured in production.
func IsBcryptHash(secret string) bool {
	return strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$")
}
