// Package service berisi aturan presensi: sesi QR, check-in bergeofence,
// presensi manual, rekap, dan pengajuan izin/sakit.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	notif "sekolahku_backend/internals/features/notifications/service"
	"sekolahku_backend/internals/configs"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/helpers/geo"
)

type Service struct {
	store    Store
	notifier notif.Notifier
	cfg      configs.Settings

	now      dbtime.Clock
	distance func(a, b geo.Point) float64
	newCode  func(n int) (string, error)
}

type Option func(*Service)

func WithClock(c dbtime.Clock) Option { return func(s *Service) { s.now = c } }

// WithDistance mengganti kalkulator jarak (test batas radius)
func WithDistance(fn func(a, b geo.Point) float64) Option {
	return func(s *Service) { s.distance = fn }
}

func WithCodeGenerator(fn func(n int) (string, error)) Option {
	return func(s *Service) { s.newCode = fn }
}

func New(store Store, notifier notif.Notifier, cfg configs.Settings, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		distance: geo.DistanceMeters,
		newCode:  RandomCode,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cfg.Location == nil {
		s.cfg.Location = time.UTC
	}
	return s
}

// today: tanggal kalender di zona sekolah
func (s *Service) today(now time.Time) string {
	return dbtime.DateString(now, s.cfg.Location)
}

// notify best-effort: gagal simpan notifikasi tidak membatalkan aksi utama
func (s *Service) notify(ctx context.Context, msg notif.Message) {
	if s.notifier == nil || len(msg.Recipients) == 0 {
		return
	}
	if _, err := s.notifier.Notify(ctx, msg); err != nil {
		log.Printf("[ERROR] notifikasi %s gagal: %v", msg.Jenis, err)
	}
}

// loadErr: ErrNotFound → notFound, error lain → ServerError
func loadErr(err error, notFound *helper.AppError) error {
	if errors.Is(err, ErrNotFound) {
		return notFound
	}
	return helper.NewServer("gagal memuat data", err)
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
