package utils

import (
	"testing"
	"time"

	"news_portal/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1_700_000_000, 0)

// fixedCodec returns a codec whose clock reads *now
func fixedCodec(secret string, ttl time.Duration, now *time.Time) *TokenCodec {
	tc := NewTokenCodec(secret, ttl)
	tc.Now = func() time.Time { return *now }
	return tc
}

func signRaw(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := epoch
	tc := fixedCodec("secret", time.Hour, &now)
	for _, id := range []domain.Identity{
		{ID: "a1b2", Role: domain.RoleAdmin},
		{ID: "writer-42", Role: domain.RoleWriter},
		{ID: "5f0c7c8e-1111-4d2a-9a57-3b1c2f0e9d10", Role: domain.RoleWriter},
	} {
		token, err := tc.Issue(id)
		require.NoError(t, err)
		got, err := tc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	now := epoch
	tc := fixedCodec("secret", time.Hour, &now)
	token, err := tc.Issue(domain.Identity{ID: "u1", Role: domain.RoleWriter})
	require.NoError(t, err)

	now = epoch.Add(time.Hour - time.Second)
	_, err = tc.Verify(token)
	assert.NoError(t, err, "token must still be valid just before ttl")

	now = epoch.Add(time.Hour + time.Second)
	_, err = tc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyExpiryBoundarySubSecond(t *testing.T) {
	issued := epoch.Add(700 * time.Millisecond)
	now := issued
	tc := fixedCodec("secret", time.Hour, &now)
	token, err := tc.Issue(domain.Identity{ID: "u1", Role: domain.RoleWriter})
	require.NoError(t, err)

	now = issued.Add(time.Hour - 100*time.Millisecond)
	_, err = tc.Verify(token)
	assert.NoError(t, err, "whole-second exp must not cut the ttl short")

	now = issued.Add(time.Hour + time.Second)
	_, err = tc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	now := epoch
	issuer := fixedCodec("other-secret", time.Hour, &now)
	verifier := fixedCodec("secret", time.Hour, &now)
	token, err := issuer.Issue(domain.Identity{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	now := epoch
	tc := fixedCodec("secret", time.Hour, &now)
	for _, token := range []string{"", "invalid-token", "a.b.c", "Bearer x"} {
		_, err := tc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, token)
	}
}

func TestVerifyRejectsUnexpectedPayloads(t *testing.T) {
	now := epoch
	tc := fixedCodec("secret", time.Hour, &now)
	valid := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(epoch),
		ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour)),
	}
	cases := map[string]string{
		"unknown role":    signRaw(t, jwt.SigningMethodHS256, []byte("secret"), Claims{ID: "u1", Role: "superuser", RegisteredClaims: valid}),
		"missing id":      signRaw(t, jwt.SigningMethodHS256, []byte("secret"), Claims{Role: "admin", RegisteredClaims: valid}),
		"missing exp":     signRaw(t, jwt.SigningMethodHS256, []byte("secret"), Claims{ID: "u1", Role: "admin"}),
		"alg none":        signRaw(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{ID: "u1", Role: "admin", RegisteredClaims: valid}),
		"alg HS512":       signRaw(t, jwt.SigningMethodHS512, []byte("secret"), Claims{ID: "u1", Role: "admin", RegisteredClaims: valid}),
		"untyped payload": signRaw(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": 7, "role": "admin", "exp": epoch.Add(time.Hour).Unix()}),
	}
	for name, token := range cases {
		_, err := tc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, name)
	}
}

func TestVerifyNormalizesRole(t *testing.T) {
	now := epoch
	tc := fixedCodec("secret", time.Hour, &now)
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour))}
	token := signRaw(t, jwt.SigningMethodHS256, []byte("secret"), Claims{ID: "u1", Role: " Admin ", RegisteredClaims: valid})

	got, err := tc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "u1", Role: domain.RoleAdmin}, got)
}

func TestIssueRejectsInvalidIdentity(t *testing.T) {
	tc := NewTokenCodec("secret", time.Hour)
	_, err := tc.Issue(domain.Identity{ID: "", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = tc.Issue(domain.Identity{ID: "u1", Role: "editor"})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
