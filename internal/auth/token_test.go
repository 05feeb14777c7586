package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 60)

	token, err := issuer.Generate("alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", email)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 60)
	other := NewTokenIssuer("other-secret", 60)

	token, err := issuer.Generate("alice@x.com")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -1)

	token, err := issuer.Generate("alice@x.com")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 60)

	_, err := issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
