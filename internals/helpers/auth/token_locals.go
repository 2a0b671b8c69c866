package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Nama locals yang diisi middleware AuthJWT
const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "role"      // constants.Role
	LocUserName = "user_name" // string
	LocRawToken = "raw_token" // string
)

// Actor = identitas pemanggil yang diteruskan controller → service.
type Actor struct {
	UserID uuid.UUID
	Role   constants.Role
}

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetRoleFromToken: role wajib ada & dikenal.
func GetRoleFromToken(c *fiber.Ctx) (constants.Role, error) {
	switch t := c.Locals(LocRole).(type) {
	case constants.Role:
		if t.Valid() {
			return t, nil
		}
	case string:
		if r, err := constants.ParseRole(t); err == nil {
			return r, nil
		}
	}
	return "", fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan pada token")
}

// GetActor: user_id + role sekaligus.
func GetActor(c *fiber.Ctx) (Actor, error) {
	uid, err := GetUserIDFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	role, err := GetRoleFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: uid, Role: role}, nil
}

func HasRole(c *fiber.Ctx, roles ...constants.Role) bool {
	r, err := GetRoleFromToken(c)
	if err != nil {
		return false
	}
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}
