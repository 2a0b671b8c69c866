package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/notifications/controller"
	"sekolahku_backend/internals/features/notifications/repository"
)

// NotificationUserRoutes: inbox + device token (semua role).
func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	NotificationRoutes(user, repository.NewNotificationRepository(db))
}

func NotificationRoutes(user fiber.Router, store controller.InboxStore) {
	ctl := controller.NewNotificationController(store)

	n := user.Group("/notifikasi")
	n.Get("/", ctl.List)
	n.Get("/unread-count", ctl.UnreadCount)
	n.Patch("/read-all", ctl.MarkAllRead)
	n.Patch("/:id/read", ctl.MarkRead)

	d := user.Group("/device-tokens")
	d.Post("/", ctl.RegisterDeviceToken)
	d.Delete("/", ctl.UnregisterDeviceToken)
}
