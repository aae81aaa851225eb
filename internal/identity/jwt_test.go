package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user-123",
		Issuer:    "cadence",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testSecret, "cadence")

	ident, err := v.Verify(signToken(t, testSecret, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-123", ident.UserID)
	assert.True(t, ident.SignedIn())
}

func TestVerifyNoIssuerCheckWhenUnconfigured(t *testing.T) {
	v := NewVerifier(testSecret, "")

	claims := validClaims()
	claims.Issuer = "someone-else"
	_, err := v.Verify(signToken(t, testSecret, claims))
	assert.NoError(t, err)
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier(testSecret, "cadence")

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "wrong secret",
			token: signToken(t, "other-secret", validClaims()),
		},
		{
			name: "expired",
			token: signToken(t, testSecret, jwt.RegisteredClaims{
				Subject:   "user-123",
				Issuer:    "cadence",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
		},
		{
			name: "missing expiry",
			token: signToken(t, testSecret, jwt.RegisteredClaims{
				Subject: "user-123",
				Issuer:  "cadence",
			}),
		},
		{
			name: "wrong issuer",
			token: signToken(t, testSecret, jwt.RegisteredClaims{
				Subject:   "user-123",
				Issuer:    "intruder",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
		{
			name: "missing subject",
			token: signToken(t, testSecret, jwt.RegisteredClaims{
				Issuer:    "cadence",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
		{
			name:  "garbage",
			token: "not.a.token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := v.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
			assert.Equal(t, Anonymous, ident)
		})
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	v := NewVerifier(testSecret, "")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestStaticTokenProvider(t *testing.T) {
	p := StaticTokenProvider{Value: "tok"}
	got, err := p.Token(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}
