package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"sekolahku_backend/internals/configs"
)

// Reaper = service presensi (hapus sesi kedaluwarsa)
type Reaper interface {
	ReapExpired(ctx context.Context) (int64, error)
}

const jobTimeout = 50 * time.Second

// StartCron menjadwalkan pengingat jadwal + reaper sesi.
// Job yang masih jalan tidak ditumpuk (SkipIfStillRunning).
func StartCron(cfg configs.Settings, reminder *Reminder, reaper Reaper) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := c.AddFunc(cfg.ReminderCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := reminder.Run(ctx)
		if err != nil {
			log.Printf("[CRON] ❌ reminder: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CRON] 🔔 pengingat terkirim untuk %d jadwal", n)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.SessionReaperCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := reaper.ReapExpired(ctx)
		if err != nil {
			log.Printf("[CRON] ❌ reaper sesi: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CRON] 🧹 %d sesi kedaluwarsa dihapus", n)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[CRON] ✅ scheduler aktif (reminder=%q reaper=%q tz=%s)", cfg.ReminderCron, cfg.SessionReaperCron, cfg.Timezone)
	return c, nil
}
