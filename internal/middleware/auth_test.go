package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

func protectedApp(tokens *auth.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JWTAuth(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

func TestJWTAuthAcceptsValidBearer(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	app := protectedApp(tokens)

	token, _, err := tokens.Generate("user-1", models.RolePatient)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTAuthRejects(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	app := protectedApp(tokens)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	other := auth.NewTokenManager("other-secret", time.Hour)
	token, _, err := other.Generate("user-1", models.RolePatient)
	require.NoError(t, err)

	app := protectedApp(auth.NewTokenManager("secret", time.Hour))
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
