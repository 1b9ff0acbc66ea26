package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Conciliacion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Conciliacion-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "ana.souza"
	testIssuer    = "conciliacion-test"
)

func signed(t *testing.T, userID, username, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, username, role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func signedExp(minutes int) string {
	tok, _ := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "admin", testIssuer, minutes)
	return "Bearer " + tok
}

// tokenForRole token del operador de prueba con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	return signed(t, testUserID, testUsername, role)
}

// policyApp reproduce la política del router: /negocio para todos los roles, /admin solo admin.
func policyApp() *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Get("/negocio", auth, apphttp.RequireRole(apphttp.AllRoles...), ok)
	app.Get("/admin", auth, apphttp.RequireRole(apphttp.AllRoles...), apphttp.RequireRole(apphttp.RoleAdmin), ok)
	return app
}

func TestRequireRole_Matriz(t *testing.T) {
	cases := []struct {
		role         string
		negocio      int
		admin        int
		codigoDenied string
	}{
		{apphttp.RoleAdmin, http.StatusNoContent, http.StatusNoContent, ""},
		{apphttp.RoleNormal, http.StatusNoContent, http.StatusForbidden, "FORBIDDEN"},
		{apphttp.RoleTercerizado, http.StatusNoContent, http.StatusForbidden, "FORBIDDEN"},
		{"auditor_externo", http.StatusForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"", http.StatusUnauthorized, http.StatusUnauthorized, "MISSING_ROLE"},
	}
	app := policyApp()
	for _, tc := range cases {
		t.Run("rol="+tc.role, func(t *testing.T) {
			for path, want := range map[string]int{"/negocio": tc.negocio, "/admin": tc.admin} {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				req.Header.Set("Authorization", tokenForRole(t, tc.role))
				resp, err := app.Test(req, -1)
				require.NoError(t, err)
				assert.Equal(t, want, resp.StatusCode, path)

				if want >= 400 {
					var body map[string]string
					require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
					assert.Equal(t, tc.codigoDenied, body["code"], path)
				}
				resp.Body.Close()
			}
		})
	}
}

func TestAuthMiddleware_HeadersInvalidos(t *testing.T) {
	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":       {"", "MISSING_TOKEN"},
		"esquema basic":    {"Basic abc", "INVALID_TOKEN"},
		"token malformado": {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"expirado":         {signedExp(-5), "EXPIRED_TOKEN"},
		"otro secret": {func() string {
			tok, _ := pkgjwt.Generate("otro-secret", testUserID, testUsername, "admin", testIssuer, 60)
			return "Bearer " + tok
		}(), "INVALID_TOKEN"},
	}
	app := policyApp()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/negocio", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestGetActor_UsernameOUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"actor":   apphttp.GetActor(c),
			"role":    apphttp.GetRole(c),
		})
	})

	me := func(header string) map[string]string {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	body := me(tokenForRole(t, "normal"))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["actor"])
	assert.Equal(t, "normal", body["role"])

	body = me(signed(t, "svc-importador", "", "tercerizado"))
	assert.Equal(t, "svc-importador", body["actor"], "sin username se usa user_id")
}
