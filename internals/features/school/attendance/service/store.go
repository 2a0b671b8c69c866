package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// PengajuanFilter untuk listing pengajuan per role
type PengajuanFilter struct {
	SiswaID  *uuid.UUID
	KelasIDs []uuid.UUID // siswa yang kelasnya termasuk daftar ini
	Status   *m.StatusPengajuan
	Tanggal  string
	Offset   int
	Limit    int
}

var (
	ErrNotFound  = errors.New("data tidak ditemukan")
	ErrDuplicate = errors.New("data duplikat")
	// baris yang dirujuk (siswa/jadwal/kelas) sudah dihapus: FK violation
	ErrMissingRef = errors.New("referensi tidak ditemukan")
)

// Store = semua akses data yang dibutuhkan service presensi.
// Implementasi wajib memetakan not found → ErrNotFound, unique violation → ErrDuplicate
// dan foreign key violation → ErrMissingRef.
type Store interface {
	// referensi
	GetUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	GetKelas(ctx context.Context, id uuid.UUID) (*kelasModel.KelasModel, error)
	GetJadwal(ctx context.Context, id uuid.UUID) (*jadwalModel.JadwalModel, error)
	ListSiswaByKelas(ctx context.Context, kelasID uuid.UUID) ([]userModel.UserModel, error)
	ListKelasByWali(ctx context.Context, guruID uuid.UUID) ([]kelasModel.KelasModel, error)

	// sesi presensi
	CreateSession(ctx context.Context, s *m.SesiPresensiModel) error
	GetSession(ctx context.Context, id uuid.UUID) (*m.SesiPresensiModel, error)
	FindActiveSessionByKode(ctx context.Context, kode string, now time.Time) (*m.SesiPresensiModel, error)
	FindActiveSessionForJadwal(ctx context.Context, jadwalID uuid.UUID, tanggal string, now time.Time) (*m.SesiPresensiModel, error)
	DeactivateSession(ctx context.Context, id uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// absensi
	FindAbsensi(ctx context.Context, siswaID, jadwalID uuid.UUID, tanggal string) (*m.AbsensiModel, error)
	CreateAbsensi(ctx context.Context, a *m.AbsensiModel) error
	SetKeteranganForDate(ctx context.Context, siswaID uuid.UUID, tanggal string, k m.Keterangan) (int64, error)
	ListAbsensiByJadwalTanggal(ctx context.Context, jadwalID uuid.UUID, tanggal string) ([]m.AbsensiModel, error)
	ListAbsensiBySiswa(ctx context.Context, siswaID uuid.UUID, offset, limit int) ([]m.AbsensiModel, int64, error)

	// pengajuan izin/sakit
	CreatePengajuan(ctx context.Context, p *m.PengajuanAbsensiModel) error
	GetPengajuan(ctx context.Context, id uuid.UUID) (*m.PengajuanAbsensiModel, error)
	FindOpenPengajuan(ctx context.Context, siswaID uuid.UUID, tanggal string) (*m.PengajuanAbsensiModel, error) // pending/disetujui
	HasApprovedLeave(ctx context.Context, siswaID uuid.UUID, tanggal string) (bool, error)
	// MarkReviewed hanya mengubah baris yang masih pending; false = sudah direview orang lain
	MarkReviewed(ctx context.Context, p *m.PengajuanAbsensiModel) (bool, error)
	ListPengajuan(ctx context.Context, f PengajuanFilter) ([]m.PengajuanAbsensiModel, int64, error)

	// Tx menjalankan fn dalam satu transaksi (store di dalam fn terikat tx)
	Tx(ctx context.Context, fn func(Store) error) error
}
