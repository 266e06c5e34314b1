// Package token issues and verifies the HMAC-signed bearer tokens gating
// the admin API.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/golang-jwt/jwt/v5"
)

var _ port.TokenAuthority = (*Authority)(nil)

// ErrInvalidToken covers malformed, tampered, and expired tokens alike;
// the HTTP layer maps it to 403.
var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultTTL = 24 * time.Hour

type adminClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthority(secret string, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authority{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (a *Authority) Issue(u domain.AdminUser) (string, error) {
	const op = "Authority.Issue"

	now := a.now()
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

func (a *Authority) Verify(raw string) (port.TokenClaims, error) {
	const op = "Authority.Verify"

	var claims adminClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return port.TokenClaims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return port.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
