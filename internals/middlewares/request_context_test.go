package middlewares

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sekolahku_backend/internals/helpers"
)

type logSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *logSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

func (s *logSink) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}

func newRequestContextApp(sink *logSink) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(RequestContext(time.Second, sink.printf))
	app.Get("/ok", func(c *fiber.Ctx) error {
		_, hasDeadline := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"deadline": hasDeadline})
	})
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return helper.NewForbidden("NOT_IN_CLASS", "bukan anggota kelas")
	})
	return app
}

func TestRequestContext_LogsFinalStatusForErrors(t *testing.T) {
	cases := []struct {
		path string
		want int
	}{
		{"/ok", fiber.StatusOK},
		{"/unauthorized", fiber.StatusUnauthorized},
		{"/forbidden", fiber.StatusForbidden},
		{"/tidak-ada", fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			sink := &logSink{}
			app := newRequestContextApp(sink)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Contains(t, sink.last(), fmt.Sprintf("status=%d", tc.want))
		})
	}
}

func TestRequestContext_RequestID(t *testing.T) {
	app := newRequestContextApp(&logSink{})

	req := httptest.NewRequest(fiber.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
