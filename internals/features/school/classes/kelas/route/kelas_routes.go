package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classes/kelas/controller"
)

// KelasAdminRoutes: mount di group /api/a (super_admin)
func KelasAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewKelasController(db)

	g := admin.Group("/kelas")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
}
