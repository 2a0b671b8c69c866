package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	notifRepo "sekolahku_backend/internals/features/notifications/repository"
	notif "sekolahku_backend/internals/features/notifications/service"
	attendanceRepo "sekolahku_backend/internals/features/school/attendance/repository"
	attendanceService "sekolahku_backend/internals/features/school/attendance/service"
	"sekolahku_backend/internals/features/school/reminders/scheduler"
	helper "sekolahku_backend/internals/helpers"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	middlewares "sekolahku_backend/internals/middlewares"
	routes "sekolahku_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	settings := configs.LoadSettings()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.FiberErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               6 * 1024 * 1024, // bukti izin maks 5MB + form
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(middlewares.RequestContext(5*time.Second, log.Printf))

	middlewares.SetupMiddlewares(app, settings.Timezone)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ AutoMigrate: %v", err)
	}
	database.TunePool()
	database.WarmUpQueries()

	// 🔔 Notifikasi: DB + FCM (noop kalau kredensial kosong)
	pusher, err := notif.NewFCMPusherFromEnv(context.Background())
	if err != nil {
		log.Printf("[PUSH] ❌ %v, push memakai noop", err)
		pusher = notif.NoopPusher{}
	}
	dispatcher := notif.NewDispatcher(notifRepo.NewNotificationRepository(database.DB), pusher)

	attendance := attendanceService.New(attendanceRepo.NewGormStore(database.DB), dispatcher, settings)

	// ☁️ OSS untuk bukti izin (opsional)
	var blob helperOSS.BlobService
	if b, err := helperOSS.NewOSSBlobServiceFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "sekolahku")); err != nil {
		log.Printf("[INFO] OSS tidak aktif: %v", err)
	} else {
		blob = b
	}

	// ⏱ scheduler setelah DB siap
	reminder := scheduler.NewReminder(scheduler.NewGormStore(database.DB), dispatcher, settings, nil)
	cronJobs, err := scheduler.StartCron(settings, reminder, attendance)
	if err != nil {
		log.Fatalf("[CRON] ❌ gagal start: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Deps{
		Attendance: attendance,
		Notifier:   dispatcher,
		Blob:       blob,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron → fiber → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	<-cronJobs.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
