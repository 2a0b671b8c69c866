package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Jenis notifikasi
const (
	JenisPengumuman      = "pengumuman"
	JenisPengingatJadwal = "pengingat_jadwal"
	JenisPengajuanBaru   = "pengajuan_absensi"
	JenisReviewPengajuan = "review_pengajuan"
)

type NotifikasiModel struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:idx_notifikasi_user_read,priority:1" json:"userId"`
	Jenis     string            `gorm:"column:jenis;type:varchar(40);not null" json:"jenis"`
	Judul     string            `gorm:"column:judul;type:varchar(200);not null" json:"judul"`
	Pesan     string            `gorm:"column:pesan;type:text;not null" json:"pesan"`
	RefType   *string           `gorm:"column:ref_type;type:varchar(40)" json:"refType,omitempty"`
	RefID     *uuid.UUID        `gorm:"column:ref_id;type:uuid" json:"refId,omitempty"`
	Data      datatypes.JSONMap `gorm:"column:data;type:jsonb" json:"data,omitempty"`
	IsRead    bool              `gorm:"column:is_read;not null;default:false;index:idx_notifikasi_user_read,priority:2" json:"isRead"`
	ReadAt    *time.Time        `gorm:"column:read_at;type:timestamptz" json:"readAt,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (NotifikasiModel) TableName() string { return "notifikasi" }
