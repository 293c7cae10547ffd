package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/me", AuthJWT, RequireRoles(roles...), func(c *fiber.Ctx) error {
		a := ActorFrom(c)
		return c.JSON(fiber.Map{"userId": a.UserID, "role": a.Role, "refId": a.RefID, "requestId": a.RequestID})
	})
	return app
}

func bearer(t *testing.T, role, refID string) string {
	t.Helper()
	token, err := utils.GenerateJWT("u1", "u1@pulsepad.io", role, refID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthJWTMissingHeader(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTInvalidToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"employee on employee route", models.RoleEmployee, []string{models.RoleEmployee}, fiber.StatusOK},
		{"admin passes everywhere", models.RoleAdmin, []string{models.RoleClient}, fiber.StatusOK},
		{"client on employee route", models.RoleClient, []string{models.RoleEmployee}, fiber.StatusForbidden},
		{"employee on admin route", models.RoleEmployee, nil, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			req.Header.Set("Authorization", bearer(t, tc.role, "emp1"))
			resp, err := newApp(tc.allowed...).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestActorFromLocals(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", bearer(t, models.RoleEmployee, "emp1"))
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := newApp(models.RoleEmployee).Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"userId":"u1","role":"employee","refId":"emp1","requestId":"req-42"}`, string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	_, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	m.Track("validated", 1)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `http_requests_total{endpoint="/ping",method="GET",status="200"} 1`)
	assert.Contains(t, string(body), `pulsepad_assessment_events_total{event="validated"} 1`)
}
