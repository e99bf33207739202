package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Kind       Kind   `json:"kind"`
	SuperAdmin bool   `json:"super,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens carrying a Principal.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *TokenIssuer) Issue(p Principal) (string, time.Time, error) {
	if !p.Authenticated() {
		return "", time.Time{}, fmt.Errorf("issue token: incomplete principal")
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:      p.Email,
		Name:       p.Name,
		Kind:       p.Kind,
		SuperAdmin: p.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (i *TokenIssuer) Parse(token string) (Principal, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{
		ID:         c.Subject,
		Email:      c.Email,
		Name:       c.Name,
		Kind:       c.Kind,
		SuperAdmin: c.SuperAdmin && c.Kind == KindAdmin,
	}
	if !p.Authenticated() {
		return Principal{}, ErrInvalidToken
	}
	return p, nil
}
