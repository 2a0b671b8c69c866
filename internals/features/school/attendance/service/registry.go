package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"strings"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/geo"
	"sekolahku_backend/internals/metrics"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5
)

// RandomCode: n karakter A-Z0-9 dari crypto/rand
func RandomCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String(), nil
}

// NormalizeKode: kode dari scan/ketikan → uppercase tanpa spasi
func NormalizeKode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type CreateSessionResult struct {
	Session    *m.SesiPresensiModel
	IsExisting bool
}

// CreateSession membuka sesi presensi untuk jadwal hari ini.
// Sesi aktif yang masih berlaku dikembalikan apa adanya (IsExisting=true).
// Dua permintaan yang benar-benar bersamaan masih bisa menghasilkan dua sesi.
func (s *Service) CreateSession(ctx context.Context, actor helperAuth.Actor, jadwalID uuid.UUID, anchor geo.Point) (*CreateSessionResult, error) {
	jadwal, err := s.store.GetJadwal(ctx, jadwalID)
	if err != nil {
		return nil, loadErr(err, errJadwalNotFound())
	}
	if !teachesJadwal(actor, jadwal, false) {
		return nil, helper.NewForbidden("NOT_JADWAL_TEACHER", "Anda bukan pengajar jadwal ini")
	}
	if !jadwal.IsActive {
		return nil, helper.NewForbidden("JADWAL_INACTIVE", "Jadwal tidak aktif")
	}

	now := s.now()
	tanggal := s.today(now)

	existing, err := s.store.FindActiveSessionForJadwal(ctx, jadwal.ID, tanggal, now)
	switch {
	case err == nil:
		metrics.SessionCreateTotal.WithLabelValues("reused").Inc()
		return &CreateSessionResult{Session: existing, IsExisting: true}, nil
	case !errors.Is(err, ErrNotFound):
		return nil, helper.NewServer("gagal memeriksa sesi aktif", err)
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		kode, err := s.newCode(s.cfg.SessionCodeLength)
		if err != nil {
			return nil, helper.NewServer("gagal membuat kode sesi", err)
		}
		sesi := &m.SesiPresensiModel{
			ID:         uuid.New(),
			JadwalID:   jadwal.ID,
			Tanggal:    tanggal,
			Kode:       kode,
			Latitude:   anchor.Latitude,
			Longitude:  anchor.Longitude,
			ExpiredAt:  now.Add(s.cfg.SessionTTL),
			IsActive:   true,
			DibuatOleh: actor.UserID,
			CreatedAt:  now,
		}
		err = s.store.CreateSession(ctx, sesi)
		if err == nil {
			metrics.SessionCreateTotal.WithLabelValues("created").Inc()
			log.Printf("[INFO] 🟢 sesi presensi %s dibuka jadwal=%s tanggal=%s", sesi.Kode, jadwal.ID, tanggal)
			return &CreateSessionResult{Session: sesi}, nil
		}
		if !errors.Is(err, ErrDuplicate) {
			return nil, helper.NewServer("gagal menyimpan sesi", err)
		}
		log.Printf("[WARN] kode sesi bentrok (percobaan %d/%d)", attempt, maxCodeAttempts)
	}
	return nil, helper.NewServer("gagal membuat kode sesi unik", errors.New("kode bentrok terus"))
}

// FindActiveSession: hanya sesi is_active && expired_at > now.
// Kedaluwarsa dan tidak ada dilaporkan sama.
func (s *Service) FindActiveSession(ctx context.Context, kode string) (*m.SesiPresensiModel, error) {
	kode = NormalizeKode(kode)
	if kode == "" {
		return nil, errSessionNotFound()
	}
	sesi, err := s.store.FindActiveSessionByKode(ctx, kode, s.now())
	if err != nil {
		return nil, loadErr(err, errSessionNotFound())
	}
	return sesi, nil
}

// EndSession: pengajar jadwal (atau super_admin) menutup sesi lebih awal.
func (s *Service) EndSession(ctx context.Context, actor helperAuth.Actor, sesiID uuid.UUID) (*m.SesiPresensiModel, error) {
	sesi, err := s.store.GetSession(ctx, sesiID)
	if err != nil {
		return nil, loadErr(err, errSessionNotFound())
	}
	jadwal, err := s.store.GetJadwal(ctx, sesi.JadwalID)
	if err != nil {
		return nil, loadErr(err, errJadwalNotFound())
	}
	if !teachesJadwal(actor, jadwal, true) {
		return nil, helper.NewForbidden("NOT_JADWAL_TEACHER", "Anda bukan pengajar jadwal ini")
	}
	if !sesi.IsActive {
		return sesi, nil
	}
	if err := s.store.DeactivateSession(ctx, sesi.ID); err != nil {
		return nil, loadErr(err, errSessionNotFound())
	}
	sesi.IsActive = false
	return sesi, nil
}

// ReapExpired menghapus sesi dengan expired_at <= now (dipanggil cron).
func (s *Service) ReapExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.SessionsReapedTotal.Add(float64(n))
	return n, nil
}
