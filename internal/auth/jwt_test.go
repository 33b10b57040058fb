package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, exp, err := mgr.Generate("user-1", models.RoleDoctor)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Generate("user-1", models.RolePatient)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, _, err := NewTokenManager("secret", -time.Minute).Generate("user-1", models.RolePatient)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", -time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr := NewTokenManager("secret", time.Hour)
	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := mgr.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
