package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting (recover paling luar, limiter terakhir)
func SetupMiddlewares(app *fiber.App, tz string) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware(tz))
	app.Use(GlobalRateLimiter())
}
