// file: internals/route/index.go
package routes

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	notifRoute "sekolahku_backend/internals/features/notifications/route"
	notif "sekolahku_backend/internals/features/notifications/service"
	pengumumanRoute "sekolahku_backend/internals/features/school/announcements/announcement/route"
	attendanceRoute "sekolahku_backend/internals/features/school/attendance/route"
	attendanceService "sekolahku_backend/internals/features/school/attendance/service"
	kelasRoute "sekolahku_backend/internals/features/school/classes/kelas/route"
	jadwalRoute "sekolahku_backend/internals/features/school/schedules/route"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps = service yang sudah dirakit di main (dipakai bersama cron)
type Deps struct {
	Attendance *attendanceService.Service
	Notifier   notif.Notifier
	Blob       helperOSS.BlobService // nil kalau OSS tidak dikonfigurasi
}

// userActive: akun nonaktif ditolak walau token masih berlaku
func userActive(db *gorm.DB) func(ctx context.Context, id uuid.UUID) (bool, error) {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		var u userModel.UserModel
		err := db.WithContext(ctx).Select("id", "is_active").Where("id = ?", id).Take(&u).Error
		if err != nil {
			return false, err
		}
		return u.IsActive, nil
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
		UserActive:          userActive(db),
	})

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", jwt)

	attendanceRoute.AttendanceUserRoutes(user, deps.Attendance, deps.Blob)
	notifRoute.NotificationUserRoutes(user, db)
	pengumumanRoute.PengumumanUserRoutes(user, db, deps.Notifier)
	jadwalRoute.JadwalUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", jwt, authMiddleware.IsSuperAdmin())

	kelasRoute.KelasAdminRoutes(admin, db)
	jadwalRoute.JadwalAdminRoutes(admin, db)

	log.Println("[INFO] Routes ready.")
}
