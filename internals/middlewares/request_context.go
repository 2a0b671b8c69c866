package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	helper "sekolahku_backend/internals/helpers"
)

// RequestContext: X-Request-ID + timeout UserContext + log durasi.
// logf biasanya log.Printf.
func RequestContext(timeout time.Duration, logf func(format string, args ...any)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()

		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			// tulis response error di sini supaya status yang di-log sudah final
			if herr := helper.FiberErrorHandler(c, err); herr != nil {
				return herr
			}
		}
		logf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
