package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/geo"
	"sekolahku_backend/internals/metrics"
)

type CheckInResult struct {
	Absensi  *m.AbsensiModel
	Distance float64 // meter dari titik sesi
}

// CheckIn mencatat kehadiran siswa dari kode sesi QR.
// Urutan cek: sesi → kelas → catatan hari ini / izin → radius → simpan.
// Gagal di langkah mana pun = tidak ada catatan yang dibuat.
func (s *Service) CheckIn(ctx context.Context, siswaID uuid.UUID, kode string, coords geo.Point) (res *CheckInResult, err error) {
	defer func() { metrics.CheckInTotal.WithLabelValues(checkInLabel(err)).Inc() }()

	now := s.now()

	// 1) sesi aktif
	sesi, err := s.store.FindActiveSessionByKode(ctx, NormalizeKode(kode), now)
	if err != nil {
		return nil, loadErr(err, errInvalidSession())
	}
	jadwal, err := s.store.GetJadwal(ctx, sesi.JadwalID)
	if err != nil {
		return nil, loadErr(err, errInvalidSession())
	}

	// 2) siswa harus anggota kelas jadwal
	siswa, err := s.store.GetUser(ctx, siswaID)
	if err != nil {
		return nil, loadErr(err, errNotInClass())
	}
	if !siswa.IsActive || !siswa.InKelas(jadwal.KelasID) {
		return nil, errNotInClass()
	}

	// 3) catatan yang sudah ada hari ini
	tanggal := s.today(now)
	existing, err := s.store.FindAbsensi(ctx, siswaID, jadwal.ID, tanggal)
	switch {
	case err == nil:
		if existing.Keterangan.IsLeave() {
			return nil, errLeaveConflict()
		}
		return nil, errDuplicateCheckIn()
	case !errors.Is(err, ErrNotFound):
		return nil, helper.NewServer("gagal memeriksa absensi", err)
	}
	approved, err := s.store.HasApprovedLeave(ctx, siswaID, tanggal)
	if err != nil {
		return nil, helper.NewServer("gagal memeriksa pengajuan", err)
	}
	if approved {
		return nil, errLeaveConflict()
	}

	// 4) radius (hanya production)
	dist := s.distance(geo.Point{Latitude: sesi.Latitude, Longitude: sesi.Longitude}, coords)
	if s.cfg.EnforceGeofence && !geo.WithinRadius(dist, s.cfg.GeofenceRadiusM) {
		return nil, helper.NewForbidden(CodeOutOfRange, "Anda berada di luar radius lokasi presensi").
			With("distance", math.Round(dist*100)/100).
			With("radius", s.cfg.GeofenceRadiusM)
	}

	// 5) simpan
	lat, lng := coords.Latitude, coords.Longitude
	rec := &m.AbsensiModel{
		ID:         uuid.New(),
		SiswaID:    siswaID,
		JadwalID:   jadwal.ID,
		Tanggal:    tanggal,
		SesiID:     uuidPtr(sesi.ID),
		Metode:     m.MetodeOtomatis,
		Latitude:   &lat,
		Longitude:  &lng,
		Waktu:      now,
		Keterangan: m.KeteranganHadir,
	}
	if err := s.store.CreateAbsensi(ctx, rec); err != nil {
		// balapan dua check-in: index unik menolak yang kedua
		if errors.Is(err, ErrDuplicate) {
			return nil, errDuplicateCheckIn()
		}
		return nil, helper.NewServer("gagal menyimpan absensi", err)
	}
	return &CheckInResult{Absensi: rec, Distance: dist}, nil
}

func checkInLabel(err error) string {
	if err == nil {
		return "ok"
	}
	ae := helper.AsAppError(err)
	if ae == nil {
		return "error"
	}
	switch ae.Code {
	case CodeInvalidSession:
		return "invalid_session"
	case CodeNotInClass:
		return "forbidden"
	case CodeLeaveConflict:
		return "conflict"
	case CodeDuplicateCheckIn:
		return "duplicate"
	case CodeOutOfRange:
		return "out_of_range"
	}
	return "error"
}
