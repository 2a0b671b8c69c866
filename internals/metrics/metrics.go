// Package metrics berisi counter Prometheus yang dipakai lintas fitur.
// Di-expose lewat GET /metrics (lihat main.go).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// result: ok | invalid_session | forbidden | conflict | duplicate | out_of_range | error
	CheckInTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "presensi_checkin_total",
		Help:      "Jumlah percobaan check-in QR per hasil.",
	}, []string{"result"})

	// result: created | reused
	SessionCreateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "presensi_sesi_total",
		Help:      "Jumlah permintaan sesi presensi (baru vs dipakai ulang).",
	}, []string{"result"})

	SessionsReapedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "presensi_sesi_reaped_total",
		Help:      "Sesi kedaluwarsa yang dihapus reaper.",
	})

	NotificationsStoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "notifikasi_stored_total",
		Help:      "Notifikasi yang tersimpan per jenis.",
	}, []string{"jenis"})

	// result: sent | failed
	PushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "notifikasi_push_total",
		Help:      "Pesan push per device token per hasil.",
	}, []string{"result"})

	RemindersSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sekolahku",
		Name:      "pengingat_jadwal_total",
		Help:      "Pengingat jadwal yang dikirim cron.",
	})
)
