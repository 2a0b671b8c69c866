package scheduler

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) ActiveJadwalByHari(ctx context.Context, hari int) ([]jadwalModel.JadwalModel, error) {
	var out []jadwalModel.JadwalModel
	err := s.DB.WithContext(ctx).
		Where("hari = ? AND is_active", hari).
		Order("jam_mulai ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) JadwalRecipients(ctx context.Context, j jadwalModel.JadwalModel) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("is_active AND role = ? AND kelas_id = ?", constants.RoleSiswa, j.KelasID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return append(ids, j.GuruID), nil
}
