package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mill-maintenance-backend/config"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	a, err := New(config.AuthConfig{
		Username:        "admin",
		Password:        "admin123",
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
	})
	require.NoError(t, err)
	return a
}

func TestAuthenticator_Check(t *testing.T) {
	a := newTestAuthenticator(t)

	u, err := a.Check("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, &User{Username: "admin", Role: RoleAdmin}, u)

	_, err = a.Check("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Check("root", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_PasswordHashWins(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	a, err := New(config.AuthConfig{Username: "ops", Password: "ignored", PasswordHash: hash, JWTSecret: "x", TokenTTLMinutes: 1})
	require.NoError(t, err)

	_, err = a.Check("ops", "s3cret")
	assert.NoError(t, err)
	_, err = a.Check("ops", "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_TokenRoundTrip(t *testing.T) {
	a := newTestAuthenticator(t)

	token, expires, err := a.Issue(&User{Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = a.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := New(config.AuthConfig{Username: "admin", Password: "p", JWTSecret: "other", TokenTTLMinutes: 60})
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	a := newTestAuthenticator(t)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := a.Issue(&User{Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(config.AuthConfig{Username: "a", Password: "b"})
	assert.Error(t, err)
}
