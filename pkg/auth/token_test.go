package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestIssuer(t *testing.T, clock *fakeClock, opts ...TokenOption) *TokenIssuer {
	t.Helper()
	opts = append([]TokenOption{WithClock(clock.Now)}, opts...)
	issuer, err := NewTokenIssuer(testSecret, time.Hour, opts...)
	require.NoError(t, err)
	return issuer
}

func testIdentity() Identity {
	return Identity{
		AccountID: uuid.New(),
		Role:      "artisan",
		Email:     "wanjiru@example.com",
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)

	issuer, err := NewTokenIssuer(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, issuer.TTL())
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)
	identity := testIdentity()

	token, expiresAt, err := issuer.Issue(identity)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(time.Hour), expiresAt)

	claims, err := issuer.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	clock.now = start.Add(59 * time.Minute)
	_, err = issuer.Verify(context.Background(), token)
	assert.NoError(t, err)

	clock.now = start.Add(61 * time.Minute)
	_, err = issuer.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_TamperedSignature(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	// The first signature character carries only significant bits, so
	// changing it always changes the decoded signature.
	sigStart := strings.LastIndex(token, ".") + 1
	replacement := byte('A')
	if token[sigStart] == 'A' {
		replacement = 'B'
	}
	tampered := token[:sigStart] + string(replacement) + token[sigStart+1:]

	_, err = issuer.Verify(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestTokenIssuer_TamperedPayload(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	// Re-sign the same claims with a promoted role under another key.
	parts := strings.Split(token, ".")
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: uuid.New(),
		Role:   "client",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	})
	forgedString, err := forged.SignedString([]byte("attacker"))
	require.NoError(t, err)
	forgedParts := strings.Split(forgedString, ".")

	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = issuer.Verify(context.Background(), spliced)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)

	_, err = issuer.Verify(context.Background(), forgedString)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: uuid.New(),
		Role:   "artisan",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
		assert.True(t, IsTokenError(err))
	}
}

func TestTokenIssuer_MissingExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.New(), Role: "client"})
	token, err := noExp.SignedString(testSecret)
	require.NoError(t, err)

	_, err = issuer.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenIssuer_Revoke(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock, WithDenylist(NewRedisDenylist(client)))
	ctx := context.Background()

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	claims, err := issuer.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, claims))

	_, err = issuer.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	other, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)
	_, err = issuer.Verify(ctx, other)
	assert.NoError(t, err)
}

func TestTokenIssuer_RevokeWithoutDenylist(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)
	claims, err := issuer.Verify(context.Background(), token)
	require.NoError(t, err)

	assert.NoError(t, issuer.Revoke(context.Background(), claims))
	_, err = issuer.Verify(context.Background(), token)
	assert.NoError(t, err)
}

func TestTokenIssuer_DenylistUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock, WithDenylist(NewRedisDenylist(client)))

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	mr.Close()

	_, err = issuer.Verify(context.Background(), token)
	require.Error(t, err)
	assert.False(t, IsTokenError(err))
}
