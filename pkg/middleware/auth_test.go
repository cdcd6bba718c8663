package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"controle-financeiro/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(m *auth.JWTManager) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(m, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Hour, time.Hour)
	access, err := m.GenerateToken("user-42", "ana", "ana@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-42")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer nope", fiber.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, fiber.StatusUnauthorized},
		{"valid", "Bearer " + access, fiber.StatusOK},
	}

	app := newApp(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "user-42", string(body))
			}
		})
	}
}
