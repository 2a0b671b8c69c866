package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/announcements/announcement/model"
	"sekolahku_backend/internals/features/school/announcements/announcement/service"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
)

type PengumumanRepository struct {
	DB *gorm.DB
}

func NewPengumumanRepository(db *gorm.DB) *PengumumanRepository {
	return &PengumumanRepository{DB: db}
}

var _ service.Store = (*PengumumanRepository)(nil)

func (r *PengumumanRepository) Create(ctx context.Context, p *model.PengumumanModel) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PengumumanRepository) SetPenerima(ctx context.Context, id uuid.UUID, n int) error {
	return r.DB.WithContext(ctx).Model(&model.PengumumanModel{}).
		Where("id = ?", id).
		Update("penerima", n).Error
}

func (r *PengumumanRepository) List(ctx context.Context, f service.ListFilter) ([]model.PengumumanModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.PengumumanModel{})
	if f.KelasIDs != nil {
		if len(f.KelasIDs) == 0 {
			q = q.Where("kelas_id IS NULL")
		} else {
			q = q.Where("kelas_id IS NULL OR kelas_id IN ?", f.KelasIDs)
		}
	}
	if f.Role != "" {
		q = q.Where("(target_roles IS NULL OR cardinality(target_roles) = 0 OR ? = ANY(target_roles))", f.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.PengumumanModel
	err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error
	return rows, total, err
}

func (r *PengumumanRepository) KelasExists(ctx context.Context, kelasID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&kelasModel.KelasModel{}).Where("id = ?", kelasID).Count(&n).Error
	return n > 0, err
}

func (r *PengumumanRepository) GuruHandlesKelas(ctx context.Context, guruID, kelasID uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&kelasModel.KelasModel{}).
		Where("id = ? AND wali_kelas_id = ?", kelasID, guruID).
		Count(&n).Error; err != nil || n > 0 {
		return n > 0, err
	}
	err := r.DB.WithContext(ctx).Model(&jadwalModel.JadwalModel{}).
		Where("kelas_id = ? AND guru_id = ? AND is_active", kelasID, guruID).
		Count(&n).Error
	return n > 0, err
}

func (r *PengumumanRepository) SiswaKelas(ctx context.Context, siswaID uuid.UUID) (*uuid.UUID, error) {
	var u userModel.UserModel
	err := r.DB.WithContext(ctx).Select("id", "kelas_id").Where("id = ?", siswaID).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u.KelasID, nil
}

func (r *PengumumanRepository) Recipients(ctx context.Context, kelasID *uuid.UUID, roles []string) ([]uuid.UUID, error) {
	wants := func(role constants.Role) bool {
		if len(roles) == 0 {
			return true
		}
		for _, x := range roles {
			if x == string(role) {
				return true
			}
		}
		return false
	}
	db := r.DB.WithContext(ctx)
	var out []uuid.UUID

	if kelasID == nil {
		q := db.Model(&userModel.UserModel{}).Where("is_active")
		if len(roles) > 0 {
			q = q.Where("role IN ?", roles)
		}
		err := q.Pluck("id", &out).Error
		return out, err
	}

	if wants(constants.RoleSiswa) {
		var siswa []uuid.UUID
		if err := db.Model(&userModel.UserModel{}).
			Where("is_active AND role = ? AND kelas_id = ?", constants.RoleSiswa, *kelasID).
			Pluck("id", &siswa).Error; err != nil {
			return nil, err
		}
		out = append(out, siswa...)
	}
	if wants(constants.RoleGuru) {
		var guru []uuid.UUID
		if err := db.Model(&jadwalModel.JadwalModel{}).
			Distinct("guru_id").
			Where("kelas_id = ? AND is_active", *kelasID).
			Pluck("guru_id", &guru).Error; err != nil {
			return nil, err
		}
		out = append(out, guru...)

		var k kelasModel.KelasModel
		if err := db.Select("id", "wali_kelas_id").Where("id = ?", *kelasID).Take(&k).Error; err == nil && k.WaliKelasID != nil {
			out = append(out, *k.WaliKelasID)
		}
	}
	return out, nil
}
