package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyFailsUniformly(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	valid, err := svc.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "not.a.jwt"},
		{name: "empty token", token: ""},
		{name: "tampered token", token: valid + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(7)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeWithoutVerification(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	other := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(99)
	require.NoError(t, err)

	// decode ignores the signature, so a foreign secret still reads claims
	claims, ok := other.Decode(token)
	require.True(t, ok)
	assert.Equal(t, int64(99), claims.UserID)

	_, ok = other.Decode("garbage")
	assert.False(t, ok)
}
