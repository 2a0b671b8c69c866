package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
)

type ManualEntryInput struct {
	SiswaID    uuid.UUID
	JadwalID   uuid.UUID
	Keterangan m.Keterangan
	Tanggal    string // YYYY-MM-DD
}

// ManualEntry: guru pengampu (atau admin) mencatat kehadiran tanpa QR.
// Ditolak kalau sudah ada catatan untuk (siswa, jadwal, tanggal).
func (s *Service) ManualEntry(ctx context.Context, actor helperAuth.Actor, in ManualEntryInput) (*m.AbsensiModel, error) {
	if !in.Keterangan.Valid() {
		return nil, helper.NewValidation("INVALID_KETERANGAN", "keterangan harus hadir/izin/sakit/alpa")
	}
	tanggal, ok := dbtime.NormalizeDate(in.Tanggal)
	if !ok {
		return nil, helper.NewValidation("INVALID_TANGGAL", "tanggal harus berformat YYYY-MM-DD")
	}

	jadwal, err := s.store.GetJadwal(ctx, in.JadwalID)
	if err != nil {
		return nil, loadErr(err, errJadwalNotFound())
	}
	if !teachesJadwal(actor, jadwal, true) {
		return nil, helper.NewForbidden("NOT_JADWAL_TEACHER", "Anda bukan pengajar jadwal ini")
	}

	siswa, err := s.store.GetUser(ctx, in.SiswaID)
	if err != nil {
		return nil, loadErr(err, errUserNotFound())
	}
	if !siswa.InKelas(jadwal.KelasID) {
		return nil, helper.NewValidation(CodeNotInClass, "Siswa tidak terdaftar di kelas jadwal ini")
	}

	rec := &m.AbsensiModel{
		ID:          uuid.New(),
		SiswaID:     siswa.ID,
		JadwalID:    jadwal.ID,
		Tanggal:     tanggal,
		Metode:      m.MetodeManual,
		Waktu:       s.now(),
		Keterangan:  in.Keterangan,
		DicatatOleh: uuidPtr(actor.UserID),
	}
	if err := s.store.CreateAbsensi(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, helper.NewConflict(CodeDuplicateAbsensi, "Absensi siswa untuk jadwal & tanggal ini sudah ada")
		}
		if errors.Is(err, ErrMissingRef) {
			return nil, helper.NewNotFound("REFERENSI_HILANG", "Siswa atau jadwal sudah tidak ada")
		}
		return nil, helper.NewServer("gagal menyimpan absensi", err)
	}
	return rec, nil
}
