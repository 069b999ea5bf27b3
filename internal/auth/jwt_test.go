package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/stageinv/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, "Joe", model.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "Joe", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensHaveUniqueIDs(t *testing.T) {
	a, err := GenerateToken("s", "Joe", model.RoleGuest, time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("s", "Joe", model.RoleGuest, time.Hour)
	require.NoError(t, err)

	ca, err := ValidateToken("s", a)
	require.NoError(t, err)
	cb, err := ValidateToken("s", b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret1", "Joe", model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("secret2", token)
	assert.Error(t, err)
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "Joe", model.RoleAdmin, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = ValidateToken("secret", token)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, err := GenerateToken(secret, "test", "user", 0)
	require.NoError(t, err)
	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)

	// Zero falls back to the default; allow a few seconds of drift.
	diff := time.Until(claims.ExpiresAt.Time) - DefaultExpiry
	assert.InDelta(t, 0, diff.Seconds(), 5)
}
