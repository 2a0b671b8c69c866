package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat semua request (tz = zona waktu sekolah)
func LoggerMiddleware(tz string) fiber.Handler {
	if tz == "" {
		tz = "Asia/Jakarta"
	}
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   tz,
		Format:     "[${time}] ${locals:reqid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Next: func(c *fiber.Ctx) bool {
			// health & metrics tidak perlu dicatat
			p := c.Path()
			return p == "/metrics" || p == "/health"
		},
	})
}
