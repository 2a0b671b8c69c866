package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "sekolahku_backend/internals/features/school/attendance/model"
	svc "sekolahku_backend/internals/features/school/attendance/service"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

// GormStore = implementasi Postgres dari svc.Store
type GormStore struct {
	DB *gorm.DB
}

var _ svc.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// mapErr: gorm/pg error → sentinel service
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return svc.ErrNotFound
	case helper.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", svc.ErrDuplicate, err)
	case helper.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", svc.ErrMissingRef, err)
	default:
		return err
	}
}

func first[T any](tx *gorm.DB) (*T, error) {
	var out T
	if err := tx.First(&out).Error; err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (r *GormStore) Tx(ctx context.Context, fn func(svc.Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

/* =========================
   Referensi (users/kelas/jadwal)
   ========================= */

func (r *GormStore) GetUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return first[userModel.UserModel](r.DB.WithContext(ctx).Where("id = ?", id))
}

func (r *GormStore) GetKelas(ctx context.Context, id uuid.UUID) (*kelasModel.KelasModel, error) {
	return first[kelasModel.KelasModel](r.DB.WithContext(ctx).Where("id = ?", id))
}

func (r *GormStore) GetJadwal(ctx context.Context, id uuid.UUID) (*jadwalModel.JadwalModel, error) {
	return first[jadwalModel.JadwalModel](r.DB.WithContext(ctx).Where("id = ?", id))
}

func (r *GormStore) ListSiswaByKelas(ctx context.Context, kelasID uuid.UUID) ([]userModel.UserModel, error) {
	var out []userModel.UserModel
	err := r.DB.WithContext(ctx).
		Where("kelas_id = ? AND role = ? AND is_active = TRUE", kelasID, constants.RoleSiswa).
		Order("nama ASC").
		Find(&out).Error
	return out, err
}

func (r *GormStore) ListKelasByWali(ctx context.Context, guruID uuid.UUID) ([]kelasModel.KelasModel, error) {
	var out []kelasModel.KelasModel
	err := r.DB.WithContext(ctx).Where("wali_kelas_id = ?", guruID).Find(&out).Error
	return out, err
}

/* =========================
   Sesi presensi
   ========================= */

func (r *GormStore) CreateSession(ctx context.Context, s *m.SesiPresensiModel) error {
	return mapErr(r.DB.WithContext(ctx).Create(s).Error)
}

func (r *GormStore) GetSession(ctx context.Context, id uuid.UUID) (*m.SesiPresensiModel, error) {
	return first[m.SesiPresensiModel](r.DB.WithContext(ctx).Where("id = ?", id))
}

func (r *GormStore) FindActiveSessionByKode(ctx context.Context, kode string, now time.Time) (*m.SesiPresensiModel, error) {
	return first[m.SesiPresensiModel](r.DB.WithContext(ctx).
		Where("kode = ? AND is_active = TRUE AND expired_at > ?", kode, now))
}

func (r *GormStore) FindActiveSessionForJadwal(ctx context.Context, jadwalID uuid.UUID, tanggal string, now time.Time) (*m.SesiPresensiModel, error) {
	return first[m.SesiPresensiModel](r.DB.WithContext(ctx).
		Where("jadwal_id = ? AND tanggal = ? AND is_active = TRUE AND expired_at > ?", jadwalID, tanggal, now).
		Order("created_at DESC"))
}

func (r *GormStore) DeactivateSession(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Model(&m.SesiPresensiModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return svc.ErrNotFound
	}
	return nil
}

func (r *GormStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expired_at <= ?", now).
		Delete(&m.SesiPresensiModel{})
	return res.RowsAffected, res.Error
}

/* =========================
   Absensi
   ========================= */

func (r *GormStore) FindAbsensi(ctx context.Context, siswaID, jadwalID uuid.UUID, tanggal string) (*m.AbsensiModel, error) {
	return first[m.AbsensiModel](r.DB.WithContext(ctx).
		Where("siswa_id = ? AND jadwal_id = ? AND tanggal = ?", siswaID, jadwalID, tanggal))
}

func (r *GormStore) CreateAbsensi(ctx context.Context, a *m.AbsensiModel) error {
	return mapErr(r.DB.WithContext(ctx).Create(a).Error)
}

// SetKeteranganForDate: satu UPDATE untuk semua absensi siswa di tanggal tsb
func (r *GormStore) SetKeteranganForDate(ctx context.Context, siswaID uuid.UUID, tanggal string, k m.Keterangan) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&m.AbsensiModel{}).
		Where("siswa_id = ? AND tanggal = ?", siswaID, tanggal).
		Updates(map[string]any{"keterangan": k, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *GormStore) ListAbsensiByJadwalTanggal(ctx context.Context, jadwalID uuid.UUID, tanggal string) ([]m.AbsensiModel, error) {
	var out []m.AbsensiModel
	err := r.DB.WithContext(ctx).
		Where("jadwal_id = ? AND tanggal = ?", jadwalID, tanggal).
		Find(&out).Error
	return out, err
}

func (r *GormStore) ListAbsensiBySiswa(ctx context.Context, siswaID uuid.UUID, offset, limit int) ([]m.AbsensiModel, int64, error) {
	var (
		out   []m.AbsensiModel
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&m.AbsensiModel{}).Where("siswa_id = ?", siswaID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("tanggal DESC, waktu DESC").Offset(offset).Limit(limit).Find(&out).Error
	return out, total, err
}

/* =========================
   Pengajuan izin/sakit
   ========================= */

func (r *GormStore) CreatePengajuan(ctx context.Context, p *m.PengajuanAbsensiModel) error {
	return mapErr(r.DB.WithContext(ctx).Create(p).Error)
}

func (r *GormStore) GetPengajuan(ctx context.Context, id uuid.UUID) (*m.PengajuanAbsensiModel, error) {
	return first[m.PengajuanAbsensiModel](r.DB.WithContext(ctx).Where("id = ?", id))
}

func (r *GormStore) FindOpenPengajuan(ctx context.Context, siswaID uuid.UUID, tanggal string) (*m.PengajuanAbsensiModel, error) {
	return first[m.PengajuanAbsensiModel](r.DB.WithContext(ctx).
		Where("siswa_id = ? AND tanggal = ? AND status IN ?", siswaID, tanggal,
			[]m.StatusPengajuan{m.StatusPending, m.StatusDisetujui}))
}

func (r *GormStore) HasApprovedLeave(ctx context.Context, siswaID uuid.UUID, tanggal string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&m.PengajuanAbsensiModel{}).
		Where("siswa_id = ? AND tanggal = ? AND status = ?", siswaID, tanggal, m.StatusDisetujui).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *GormStore) MarkReviewed(ctx context.Context, p *m.PengajuanAbsensiModel) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&m.PengajuanAbsensiModel{}).
		Where("id = ? AND status = ?", p.ID, m.StatusPending).
		Updates(map[string]any{
			"status":           p.Status,
			"reviewer_id":      p.ReviewerID,
			"catatan_reviewer": p.CatatanReviewer,
			"reviewed_at":      p.ReviewedAt,
			"updated_at":       time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *GormStore) ListPengajuan(ctx context.Context, f svc.PengajuanFilter) ([]m.PengajuanAbsensiModel, int64, error) {
	var (
		out   []m.PengajuanAbsensiModel
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&m.PengajuanAbsensiModel{})
	if f.SiswaID != nil {
		q = q.Where("pengajuan_absensi.siswa_id = ?", *f.SiswaID)
	}
	if f.KelasIDs != nil {
		q = q.Joins("JOIN users u ON u.id = pengajuan_absensi.siswa_id").
			Where("u.kelas_id IN ?", f.KelasIDs)
	}
	if f.Status != nil {
		q = q.Where("pengajuan_absensi.status = ?", *f.Status)
	}
	if f.Tanggal != "" {
		q = q.Where("pengajuan_absensi.tanggal = ?", f.Tanggal)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("pengajuan_absensi.created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&out).Error
	return out, total, err
}
