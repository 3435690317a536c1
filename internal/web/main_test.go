package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	"github.com/manojkumarbalamurugan16/task/internal/db/dbtest"
)

func testConfig() *config.Config {
	return &config.Config{
		Title: "MultiBox",
		Webserver: config.Webserver{
			AllowOrigins:  "*",
			CheckAliveURI: "/checkalive",
			MetricsURI:    "/metrics",
			Port:          3001,
		},
	}
}

func get(t *testing.T, app *fiber.App, target string, header map[string]string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, dbtest.Open(t))
	require.ErrorIs(t, err, ErrConfigNil)

	_, err = New(testConfig(), nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestCheckAlive(t *testing.T) {
	s, err := New(testConfig(), dbtest.Open(t))
	require.NoError(t, err)

	resp, _ := get(t, s.App, "/checkalive", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode, "not alive before Start")

	s.alive.Store(true)

	resp, body := get(t, s.App, "/checkalive", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestMetrics(t *testing.T) {
	s, err := New(testConfig(), dbtest.Open(t))
	require.NoError(t, err)

	resp, body := get(t, s.App, "/metrics", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestAPIRoutesAndMiddlewares(t *testing.T) {
	s, err := New(testConfig(), dbtest.Open(t))
	require.NoError(t, err)

	resp, body := get(t, s.App, "/api/groups", map[string]string{fiber.HeaderOrigin: "http://localhost:5173"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	require.NoError(t, err, "request id is a uuid")

	resp, body = get(t, s.App, "/api/inputs/group/1", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = get(t, s.App, "/api/unknown", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, `{"error":`))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Webserver.RateLimit = 1

	s, err := New(cfg, dbtest.Open(t))
	require.NoError(t, err)

	resp, _ := get(t, s.App, "/api/groups", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = get(t, s.App, "/api/groups", nil)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	s.alive.Store(true)
	resp, _ = get(t, s.App, "/checkalive", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "only /api is limited")
}

func TestRecoverMiddleware(t *testing.T) {
	s, err := New(testConfig(), dbtest.Open(t))
	require.NoError(t, err)

	s.App.Get("/panic", func(_ *fiber.Ctx) error {
		panic("boom")
	})

	resp, body := get(t, s.App, "/panic", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, body)
}
