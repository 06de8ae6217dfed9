package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_SignAndParse(t *testing.T) {
	tm := NewTokenManager("secret", "clinic-web", time.Hour)

	token, err := tm.Sign(map[string]string{"token": "abc", "role": "doctor"})
	require.NoError(t, err)

	values, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "abc", "role": "doctor"}, values)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", "clinic-web", time.Hour).Sign(map[string]string{"role": "admin"})
	require.NoError(t, err)

	_, err = NewTokenManager("other", "clinic-web", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "someone-else", time.Hour).Sign(nil)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "clinic-web", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", "clinic-web", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, err := tm.Sign(map[string]string{"token": "abc"})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", "clinic-web", time.Hour).Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_NilValues(t *testing.T) {
	tm := NewTokenManager("secret", "clinic-web", time.Hour)
	token, err := tm.Sign(nil)
	require.NoError(t, err)

	values, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Empty(t, values)
}
