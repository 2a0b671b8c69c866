package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	notifModel "sekolahku_backend/internals/features/notifications/model"
	notif "sekolahku_backend/internals/features/notifications/service"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/metrics"
)

// Store: data yang dibutuhkan pengingat jadwal.
type Store interface {
	ActiveJadwalByHari(ctx context.Context, hari int) ([]jadwalModel.JadwalModel, error)
	// guru pengampu + siswa aktif kelas jadwal tsb
	JadwalRecipients(ctx context.Context, j jadwalModel.JadwalModel) ([]uuid.UUID, error)
}

// Reminder mengirim "kelas dimulai ~10 menit lagi" sekali per (jadwal, tanggal).
// Window [now+start, now+end) lebih lebar dari interval cron, jadi yang sudah
// terkirim dicatat di set harian; set di-reset saat tanggal berganti.
type Reminder struct {
	store    Store
	notifier notif.Notifier
	cfg      configs.Settings
	now      dbtime.Clock

	mu   sync.Mutex
	day  string
	sent map[uuid.UUID]struct{}
}

func NewReminder(store Store, notifier notif.Notifier, cfg configs.Settings, now dbtime.Clock) *Reminder {
	if now == nil {
		now = time.Now
	}
	return &Reminder{store: store, notifier: notifier, cfg: cfg, now: now, sent: map[uuid.UUID]struct{}{}}
}

// Due: jadwal hari ini yang mulai di dalam window dan belum diingatkan.
func (r *Reminder) Due(ctx context.Context) ([]jadwalModel.JadwalModel, error) {
	loc := r.cfg.Location
	now := r.now().In(loc)

	r.mu.Lock()
	if d := dbtime.DateString(now, loc); d != r.day {
		r.day = d
		r.sent = map[uuid.UUID]struct{}{}
	}
	r.mu.Unlock()

	list, err := r.store.ActiveJadwalByHari(ctx, dbtime.WeekdayIn(now, loc))
	if err != nil {
		return nil, err
	}

	from := now.Add(r.cfg.ReminderWindowStart)
	to := now.Add(r.cfg.ReminderWindowEnd)

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []jadwalModel.JadwalModel
	for _, j := range list {
		if _, done := r.sent[j.ID]; done {
			continue
		}
		start := j.StartsOn(now, loc)
		if !start.Before(from) && start.Before(to) {
			out = append(out, j)
		}
	}
	return out, nil
}

// Run: satu tick cron. Kembalikan jumlah jadwal yang diingatkan.
func (r *Reminder) Run(ctx context.Context) (int, error) {
	due, err := r.Due(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, j := range due {
		recipients, err := r.store.JadwalRecipients(ctx, j)
		if err != nil {
			log.Printf("[CRON] ❌ penerima jadwal %s: %v", j.ID, err)
			continue
		}
		jadwalID := j.ID
		if _, err := r.notifier.Notify(ctx, notif.Message{
			Recipients: recipients,
			Jenis:      notifModel.JenisPengingatJadwal,
			Judul:      "Kelas " + j.MataPelajaran + " segera dimulai",
			Pesan:      fmt.Sprintf("%s dimulai pukul %s", j.MataPelajaran, j.JamMulai.String()),
			RefType:    "jadwal",
			RefID:      &jadwalID,
			Data:       map[string]any{"jamMulai": j.JamMulai.String()},
		}); err != nil {
			// tidak ditandai: dicoba lagi di tick berikutnya selama masih di window
			log.Printf("[CRON] ❌ pengingat jadwal %s: %v", j.ID, err)
			continue
		}

		r.mu.Lock()
		r.sent[j.ID] = struct{}{}
		r.mu.Unlock()
		metrics.RemindersSentTotal.Inc()
		sent++
	}
	return sent, nil
}
