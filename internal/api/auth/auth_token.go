package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-user-directory/config"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

// Claims are the custom claims carried by an access token. The subject is the login.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
}

type TokenOption func(*TokenIssuer)

// WithTokenClock replaces the time source used for issuing and verifying.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

func NewTokenIssuer(cfg config.JWTConfig, opts ...TokenOption) (*TokenIssuer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	if cfg.Lifetime() <= 0 {
		return nil, fmt.Errorf("jwt lifetime must be positive, got %s", cfg.Lifetime())
	}
	t := &TokenIssuer{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: cfg.Lifetime(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// IssueToken signs a token for u and returns it with its expiry.
func (t *TokenIssuer) IssueToken(u types.User) (string, time.Time, error) {
	now := t.now().UTC()
	expiresAt := now.Add(t.lifetime)

	claims := Claims{
		Name: u.Name,
		Role: u.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Login,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, issuer, audience and lifetime. Any failure
// wraps both types.ErrUnauthenticated and the underlying jwt error.
func (t *TokenIssuer) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", types.ErrUnauthenticated)
	}
	return claims, nil
}

// Actor converts verified claims into the caller identity.
func (c *Claims) Actor() types.Actor {
	return types.Actor{
		Login: c.Subject,
		Name:  c.Name,
		Role:  c.Role,
	}
}
