package ratelimit

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(limiter *Limiter, limitName string) *fiber.App {
	app := fiber.New()
	app.Get("/probe", Middleware(limiter, limitName), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestClientIdentifier(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = ClientIdentifier(c)
		return c.SendStatus(fiber.StatusOK)
	})

	testCases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "forwarded_for_first_hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, want: "203.0.113.7"},
		{name: "real_ip_fallback", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, want: "198.51.100.2"},
		{name: "forwarded_for_wins", headers: map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, want: "203.0.113.7"},
		{name: "sentinel_when_absent", headers: nil, want: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMiddleware_AdmitsWithQuotaHeaders(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), WithSweepChance(0))
	app := newTestApp(limiter, LimitCreateTicket)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

func TestMiddleware_DeniesWithRetryAfter(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), WithSweepChance(0))
	app := newTestApp(limiter, LimitCreateTicket)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("X-Real-IP", "198.51.100.9")
		r, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, r.StatusCode)
	}

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	r, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, r.StatusCode)
	assert.NotEmpty(t, r.Header.Get(fiber.HeaderRetryAfter))

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var payload struct {
		Error      string `json:"error"`
		RetryAfter int    `json:"retryAfter"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.NotEmpty(t, payload.Error)
	assert.Greater(t, payload.RetryAfter, 0)
	assert.LessOrEqual(t, payload.RetryAfter, 60)
}

func TestMiddleware_SeparateClientsSeparateQuotas(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), WithSweepChance(0))
	app := newTestApp(limiter, LimitCreateTicket)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("X-Real-IP", "198.51.100.9")
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-Real-IP", "203.0.113.44")
	r, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, r.StatusCode)
}
