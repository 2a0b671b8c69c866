package model

import (
	"time"

	"github.com/google/uuid"
)

type KelasModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama        string     `gorm:"column:nama;size:80;not null" json:"nama"`
	Tingkat     int        `gorm:"column:tingkat;not null" json:"tingkat"`
	WaliKelasID *uuid.UUID `gorm:"column:wali_kelas_id;type:uuid;index" json:"waliKelasId,omitempty"`
	TahunAjaran string     `gorm:"column:tahun_ajaran;size:9;not null" json:"tahunAjaran"` // "2025/2026"

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (KelasModel) TableName() string { return "kelas" }

// IsWali: guru tsb wali kelas ini?
func (k KelasModel) IsWali(guruID uuid.UUID) bool {
	return k.WaliKelasID != nil && *k.WaliKelasID == guruID
}
