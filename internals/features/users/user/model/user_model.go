package model

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama         string         `gorm:"column:nama;size:120;not null" json:"nama"`
	Email        string         `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         constants.Role `gorm:"column:role;type:varchar(20);not null;index" json:"role"`
	// Hanya terisi untuk siswa
	KelasID   *uuid.UUID `gorm:"column:kelas_id;type:uuid;index" json:"kelasId,omitempty"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// InKelas: siswa terdaftar di kelas tsb?
func (u UserModel) InKelas(kelasID uuid.UUID) bool {
	return u.Role == constants.RoleSiswa && u.KelasID != nil && *u.KelasID == kelasID
}
