package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", 7*24*time.Hour)
	verifier := NewVerifier("test-secret")

	token, err := issuer.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_ExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	verifier := NewVerifier("test-secret")

	token, err := issuer.Generate("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	assert.ErrorIs(t, err, xerrors.ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	verifier := NewVerifier("other-secret")

	token, err := issuer.Generate("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	assert.ErrorIs(t, err, xerrors.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	verifier := NewVerifier("test-secret")

	_, err := verifier.ParseAndValidate("not.a.token")
	assert.ErrorIs(t, err, xerrors.ErrInvalidToken)
}
