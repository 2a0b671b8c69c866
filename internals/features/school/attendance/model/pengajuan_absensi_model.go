package model

import (
	"time"

	"github.com/google/uuid"
)

// PengajuanAbsensiModel = pengajuan izin/sakit siswa untuk satu tanggal.
type PengajuanAbsensiModel struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID    uuid.UUID       `gorm:"column:siswa_id;type:uuid;not null;index:idx_pengajuan_siswa_tanggal" json:"siswaId"`
	Tanggal    string          `gorm:"column:tanggal;type:varchar(10);not null;index:idx_pengajuan_siswa_tanggal" json:"tanggal"`
	Keterangan Keterangan      `gorm:"column:keterangan;type:varchar(10);not null" json:"keterangan"` // izin|sakit
	Alasan     string          `gorm:"column:alasan;type:text;not null" json:"alasan"`
	BuktiURL   *string         `gorm:"column:bukti_url;type:text" json:"buktiUrl,omitempty"`
	Status     StatusPengajuan `gorm:"column:status;type:varchar(10);not null;default:'pending';index" json:"status"`

	ReviewerID      *uuid.UUID `gorm:"column:reviewer_id;type:uuid" json:"reviewerId,omitempty"`
	CatatanReviewer *string    `gorm:"column:catatan_reviewer;type:text" json:"catatanReviewer,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at;type:timestamptz" json:"reviewedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PengajuanAbsensiModel) TableName() string { return "pengajuan_absensi" }
