package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/schedules/controller"
)

// JadwalAdminRoutes: /api/a/jadwal (super_admin)
func JadwalAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewJadwalController(db)

	g := admin.Group("/jadwal")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Patch("/:id", ctl.Patch)
}

// JadwalUserRoutes: /api/u/jadwal (jadwal milik pemanggil)
func JadwalUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewJadwalController(db)
	user.Get("/jadwal", ctl.Mine)
}
