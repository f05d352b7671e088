package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidate(t *testing.T) {
	signed, err := GenerateJWT(42, "user@example.com", "Test User", []string{"Student", "ClubAdmin"}, testSecret, "anweshon-test", 1)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ValidateJWT(signed, testSecret)
	require.NoError(t, err)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.HasRole("ClubAdmin"))
	assert.True(t, claims.HasRole("clubadmin"))
	assert.False(t, claims.HasRole("Admin"))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(1, "a@b.co", "A", nil, testSecret, "anweshon-test", 1)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, "a-different-secret")
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
