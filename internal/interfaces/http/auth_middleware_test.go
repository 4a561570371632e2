package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	ifhttp "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp aplicación Fiber mínima con una ruta protegida por auth y otra
// restringida a admin, para ejercitar los middlewares de punta a punta.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	protegido := app.Group("/api", ifhttp.AuthMiddleware(testSecret))
	protegido.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": ifhttp.GetUserID(c),
			"role":    ifhttp.GetRole(c),
		})
	})
	protegido.Get("/solo-admin", ifhttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "kardex-api", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp(t)
	token := tokenForRole(t, "user-123", entity.RoleUser)

	resp, body := doRequest(t, app, "/api/perfil", "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "user-123", payload["user_id"])
	assert.Equal(t, entity.RoleUser, payload["role"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema incorrecto", "Basic abc123", "INVALID_TOKEN"},
		{"bearer sin token", "Bearer ", "MISSING_TOKEN"},
		{"token corrupto", "Bearer no.es.jwt", "INVALID_TOKEN"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, body := doRequest(t, app, "/api/perfil", c.header)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			var errResp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, c.wantCode, errResp.Code)
		})
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp(t)
	// token firmado con otro secreto
	token, err := jwt.Generate("otro-secreto", "user-123", entity.RoleUser, "kardex-api", 15)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/api/perfil", "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(t)
	// firmado a mano con exp en el pasado
	now := time.Now()
	claims := jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "kardex-api",
			Subject:   "user-123",
			IssuedAt:  jwtlib.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(-1 * time.Hour)),
		},
		UserID: "user-123",
		Role:   entity.RoleUser,
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/api/perfil", "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := buildTestApp(t)

	t.Run("admin accede", func(t *testing.T) {
		token := tokenForRole(t, "admin-1", entity.RoleAdmin)
		resp, _ := doRequest(t, app, "/api/solo-admin", "Bearer "+token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("user recibe 403", func(t *testing.T) {
		token := tokenForRole(t, "user-1", entity.RoleUser)
		resp, body := doRequest(t, app, "/api/solo-admin", "Bearer "+token)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, "FORBIDDEN", errResp.Code)
	})

	t.Run("token sin rol recibe 401", func(t *testing.T) {
		token := tokenForRole(t, "user-1", "")
		resp, body := doRequest(t, app, "/api/solo-admin", "Bearer "+token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, "MISSING_ROLE", errResp.Code)
	})
}
