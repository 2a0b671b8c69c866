package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notif "sekolahku_backend/internals/features/notifications/service"
	"sekolahku_backend/internals/features/school/announcements/announcement/controller"
	"sekolahku_backend/internals/features/school/announcements/announcement/repository"
	"sekolahku_backend/internals/features/school/announcements/announcement/service"
	"sekolahku_backend/internals/constants"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// PengumumanUserRoutes: create (guru/admin), list (semua role).
func PengumumanUserRoutes(user fiber.Router, db *gorm.DB, notifier notif.Notifier) {
	svc := service.New(repository.NewPengumumanRepository(db), notifier)
	ctl := controller.NewPengumumanController(svc)

	g := user.Group("/pengumuman")
	g.Get("/", ctl.List)
	g.Post("/", authMiddleware.OnlyRoles(constants.RoleErrorTeacher("pengumuman"), constants.TeacherAndAbove...), ctl.Create)
}
