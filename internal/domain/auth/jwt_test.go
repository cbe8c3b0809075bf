package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, exp, err := svc.GenerateAccessToken("user-1", "ana@example.com", []string{"seller"})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, []string{"seller"}, user.Roles)
}

func TestJWT_RejectsOtherSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("one"))
	validator := NewJWTService(DefaultJWTConfig("two"))

	token, _, err := issuer.GenerateAccessToken("user-1", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpired(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	svc.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }

	token, _, err := svc.GenerateAccessToken("user-1", "", nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
