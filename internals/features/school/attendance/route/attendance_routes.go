// file: internals/features/school/attendance/route/attendance_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/attendance/controller"
	"sekolahku_backend/internals/features/school/attendance/service"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AttendanceUserRoutes: route presensi & pengajuan (sudah di belakang AuthJWT).
// Contoh mount dari caller:
//
//	user := app.Group("/api/u", authMiddleware.AuthJWT(...))
//	route.AttendanceUserRoutes(user, svc, blob)
func AttendanceUserRoutes(user fiber.Router, svc *service.Service, blob helperOSS.BlobService) {
	ctl := controller.NewAttendanceController(svc, blob)

	onlyGuru := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("presensi"), constants.TeacherAndAbove...)
	onlySiswa := authMiddleware.OnlyRoles(constants.RoleErrorStudent("presensi"), constants.StudentOnly...)

	p := user.Group("/presensi")
	p.Post("/check-in", onlySiswa, middlewares.CheckInRateLimiter(), ctl.CheckIn)
	p.Get("/riwayat", onlySiswa, ctl.History)

	p.Post("/sesi", onlyGuru, ctl.CreateSession)
	p.Get("/sesi/:kode", ctl.GetActiveSession)
	p.Patch("/sesi/:id/end", onlyGuru, ctl.EndSession)
	p.Post("/manual", onlyGuru, ctl.ManualEntry)
	p.Get("/rekap", onlyGuru, ctl.Recap)

	l := user.Group("/pengajuan-absensi")
	l.Post("/", onlySiswa, middlewares.UploadRateLimiter(), ctl.SubmitLeave)
	l.Get("/", ctl.ListLeave)
	l.Patch("/:id/review", authMiddleware.OnlyRoles(constants.RoleErrorTeacher("review pengajuan"), constants.TeacherAndAbove...), ctl.ReviewLeave)
}
