package configs

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// Settings adalah aturan akademik + operasional yang dibaca sekali saat startup.
// Semua nilai punya default, ENV hanya meng-override.
type Settings struct {
	// Geofence
	EnforceGeofence bool
	GeofenceRadiusM float64

	// Sesi presensi
	SessionTTL        time.Duration
	SessionCodeLength int

	// Zona waktu sekolah (dipakai untuk "hari ini" & jadwal)
	Timezone string
	Location *time.Location

	// Pengingat jadwal (lookahead)
	ReminderWindowStart time.Duration
	ReminderWindowEnd   time.Duration
	ReminderCron        string

	// Reaper sesi kedaluwarsa
	SessionReaperCron string
}

const (
	defaultGeofenceRadiusM   = 500
	defaultSessionTTL        = 30 * time.Minute
	defaultSessionCodeLength = 6
	defaultTimezone          = "Asia/Jakarta"
	defaultReminderStart     = 9 * time.Minute
	defaultReminderEnd       = 11 * time.Minute
	defaultReminderCron      = "* * * * *"
	defaultSessionReaperCron = "* * * * *"
)

// DefaultSettings: nilai bawaan tanpa ENV (dipakai juga di test).
func DefaultSettings() Settings {
	return Settings{
		EnforceGeofence:     false,
		GeofenceRadiusM:     defaultGeofenceRadiusM,
		SessionTTL:          defaultSessionTTL,
		SessionCodeLength:   defaultSessionCodeLength,
		Timezone:            defaultTimezone,
		Location:            loadLocation(defaultTimezone),
		ReminderWindowStart: defaultReminderStart,
		ReminderWindowEnd:   defaultReminderEnd,
		ReminderCron:        defaultReminderCron,
		SessionReaperCron:   defaultSessionReaperCron,
	}
}

// LoadSettings membaca ENV di atas DefaultSettings.
// Geofence hanya aktif kalau APP_ENV=production (bisa dipaksa lewat GEOFENCE_ENFORCE).
func LoadSettings() Settings {
	s := DefaultSettings()

	env := strings.ToLower(strings.TrimSpace(GetEnv("APP_ENV", "development")))
	s.EnforceGeofence = env == "production"
	if v := strings.TrimSpace(GetEnv("GEOFENCE_ENFORCE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.EnforceGeofence = b
		}
	}

	s.GeofenceRadiusM = envFloat("GEOFENCE_RADIUS_M", s.GeofenceRadiusM)
	s.SessionTTL = envDuration("SESSION_TTL", s.SessionTTL)
	if n := envInt("SESSION_CODE_LENGTH", s.SessionCodeLength); n >= 4 && n <= 12 {
		s.SessionCodeLength = n
	}

	if tz := strings.TrimSpace(GetEnv("SCHOOL_TIMEZONE")); tz != "" {
		s.Timezone = tz
		s.Location = loadLocation(tz)
	}

	s.ReminderWindowStart = envDuration("REMINDER_WINDOW_START", s.ReminderWindowStart)
	s.ReminderWindowEnd = envDuration("REMINDER_WINDOW_END", s.ReminderWindowEnd)
	if s.ReminderWindowEnd <= s.ReminderWindowStart {
		log.Printf("[CONFIG] REMINDER_WINDOW_END <= START, kembali ke default %s-%s", defaultReminderStart, defaultReminderEnd)
		s.ReminderWindowStart = defaultReminderStart
		s.ReminderWindowEnd = defaultReminderEnd
	}
	s.ReminderCron = GetEnv("REMINDER_CRON", s.ReminderCron)
	s.SessionReaperCron = GetEnv("SESSION_REAPER_CRON", s.SessionReaperCron)

	log.Printf("[CONFIG] geofence=%v radius=%.0fm sessionTTL=%s tz=%s reminder=%s..%s",
		s.EnforceGeofence, s.GeofenceRadiusM, s.SessionTTL, s.Timezone, s.ReminderWindowStart, s.ReminderWindowEnd)
	return s
}

func loadLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	log.Printf("[CONFIG] timezone %q tidak dikenal, fallback UTC", name)
	return time.UTC
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

// envDuration menerima "30m" atau angka menit polos ("30").
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(GetEnv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return def
}
