package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	notifModel "sekolahku_backend/internals/features/notifications/model"
	pengumumanModel "sekolahku_backend/internals/features/school/announcements/announcement/model"
	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// Catatan: kalau pakai PgBouncer, biarkan PreferSimpleProtocol=true
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sekolahku&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// Models yang dikelola AutoMigrate (urutan: referensi dulu)
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&kelasModel.KelasModel{},
		&jadwalModel.JadwalModel{},
		&attendanceModel.SesiPresensiModel{},
		&attendanceModel.AbsensiModel{},
		&attendanceModel.PengajuanAbsensiModel{},
		&notifModel.NotifikasiModel{},
		&notifModel.DeviceTokenModel{},
		&pengumumanModel.PengumumanModel{},
	}
}

// Migrate: hanya jalan kalau DB_AUTO_MIGRATE=true
func Migrate(db *gorm.DB) error {
	if configs.GetEnv("DB_AUTO_MIGRATE") != "true" {
		return nil
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("⚠️ pgcrypto: %v", err)
	}
	start := time.Now()
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if err := ensureForeignKeys(db); err != nil {
		return err
	}
	log.Printf("✅ AutoMigrate selesai (%s)", time.Since(start))
	return nil
}

// relasi antar tabel (model tidak punya field relasi gorm)
var foreignKeys = []struct{ table, name, column, ref string }{
	{"jadwal", "fk_jadwal_kelas", "kelas_id", "kelas(id)"},
	{"jadwal", "fk_jadwal_guru", "guru_id", "users(id)"},
	{"sesi_presensi", "fk_sesi_jadwal", "jadwal_id", "jadwal(id)"},
	{"absensi", "fk_absensi_siswa", "siswa_id", "users(id)"},
	{"absensi", "fk_absensi_jadwal", "jadwal_id", "jadwal(id)"},
	{"pengajuan_absensi", "fk_pengajuan_siswa", "siswa_id", "users(id)"},
	{"notifikasi", "fk_notifikasi_user", "user_id", "users(id) ON DELETE CASCADE"},
	{"device_tokens", "fk_device_tokens_user", "user_id", "users(id) ON DELETE CASCADE"},
}

func ensureForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		sql := fmt.Sprintf(`DO $$ BEGIN
	ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s;
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`, fk.table, fk.name, fk.column, fk.ref)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("foreign key %s: %w", fk.name, err)
		}
	}
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		// query paling sering: sesi aktif by kode
		DB.Exec("SELECT 1 FROM sesi_presensi WHERE kode = '' LIMIT 1")
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
