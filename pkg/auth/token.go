// Package auth issues and verifies credential tokens and hashes passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenRevoked          = errors.New("token revoked")
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = time.Hour

// Identity is what a token asserts about its bearer.
type Identity struct {
	AccountID uuid.UUID
	Role      string
	Email     string
}

// Claims is the signed payload. The JSON names match what the web client
// already decodes.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"user_type"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{AccountID: c.UserID, Role: c.Role, Email: c.Email}
}

type TokenOption func(*TokenIssuer)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(i *TokenIssuer) {
		i.now = now
	}
}

// WithDenylist enables revocation checks during Verify.
func WithDenylist(d Denylist) TokenOption {
	return func(i *TokenIssuer) {
		i.denylist = d
	}
}

type TokenIssuer struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	denylist Denylist
}

func NewTokenIssuer(secret []byte, ttl time.Duration, opts ...TokenOption) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must be provided")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	i := &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for identity that expires ttl after now.
func (i *TokenIssuer) Issue(identity Identity) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := Claims{
		UserID: identity.AccountID,
		Role:   identity.Role,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature, then the expiry, then the denylist, and
// returns the embedded claims unmodified.
func (i *TokenIssuer) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user_id", ErrTokenMalformed)
	}

	if i.denylist != nil && claims.ID != "" {
		revoked, err := i.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token denylist: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke denylists the token until it would have expired anyway. Without a
// denylist it is a no-op.
func (i *TokenIssuer) Revoke(ctx context.Context, claims *Claims) error {
	if i.denylist == nil || claims == nil || claims.ID == "" {
		return nil
	}

	until := i.now().Add(i.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return i.denylist.Revoke(ctx, claims.ID, until)
}

// IsTokenError reports whether err is one of the verification failures as
// opposed to an infrastructure error.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalidSignature) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenRevoked)
}
