package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

func tooMany(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
	}
}

// key per user kalau sudah login, fallback IP
func userOrIP(c *fiber.Ctx) string {
	if id, err := helperAuth.GetUserIDFromToken(c); err == nil {
		return "u:" + id.String()
	}
	return "ip:" + c.IP()
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          100,
		Expiration:   1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: tooMany("❌ Terlalu banyak permintaan. Silakan coba lagi nanti."),
	})
}

// Check-in QR: ketat per siswa
func CheckInRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          10,
		Expiration:   1 * time.Minute,
		KeyGenerator: userOrIP,
		LimitReached: tooMany("❌ Terlalu banyak percobaan presensi. Coba beberapa saat lagi."),
	})
}

// Upload bukti izin/sakit
func UploadRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          5,
		Expiration:   5 * time.Minute,
		KeyGenerator: userOrIP,
		LimitReached: tooMany("❌ Terlalu banyak unggahan. Tunggu beberapa menit ya."),
	})
}
