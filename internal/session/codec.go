// Package session implements the signed session token codec. Tokens are
// HS256-signed JWTs carrying the admin principal and expiry; validity is fully
// self-contained, the server keeps no session store. Rotating the signing
// secret invalidates every outstanding token.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nexavault/storefront/internal/model"
)

var (
	// ErrInvalidToken is returned when the token is malformed, carries a bad
	// signature or was signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned for well-formed tokens whose expiry has passed.
	ErrExpiredToken = errors.New("session token expired")
)

// Codec encodes and decodes session payloads with a process-wide secret.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode serializes the session into a signed token string.
func (c *Codec) Encode(s model.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  s.Email,
		"role": s.Role,
		"exp":  s.ExpiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token and returns the embedded session. Expired tokens
// fail with ErrExpiredToken, anything else that does not verify fails with
// ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (*model.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	email, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &model.Session{
		Email:     email,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}
