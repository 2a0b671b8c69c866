package auth

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
	// UserActive (opsional): return false → akun nonaktif (403)
	UserActive func(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AuthJWT memverifikasi access token (diterbitkan layanan auth eksternal)
// lalu mengisi locals user_id + role.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma (exp divalidasi parser)
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// 3) user_id: ambil id/sub/user_id dalam urutan preferensi
		var uidRaw string
		for _, k := range []string{"id", "sub", "user_id"} {
			if s := strClaim(claims, k); s != "" {
				uidRaw = s
				break
			}
		}
		userID, err := uuid.Parse(uidRaw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		// 4) role wajib salah satu dari guru/siswa/super_admin
		role, err := constants.ParseRole(strClaim(claims, "role"))
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Role pada token tidak dikenal")
		}

		// 5) cek user aktif (opsional)
		if o.UserActive != nil {
			active, err := o.UserActive(c.UserContext(), userID)
			if err != nil {
				log.Println("[ERROR] AuthJWT user active check:", err)
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			if !active {
				return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			}
		}

		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocRole, role)
		c.Locals(helperAuth.LocRawToken, raw)
		if name := strClaim(claims, "user_name"); name != "" {
			c.Locals(helperAuth.LocUserName, name)
		}
		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
