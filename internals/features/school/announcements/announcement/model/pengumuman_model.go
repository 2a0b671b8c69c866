package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PengumumanModel: KelasID NULL = pengumuman umum (semua kelas).
// TargetRoles kosong = semua role.
type PengumumanModel struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Judul       string         `gorm:"column:judul;size:200;not null" json:"judul"`
	Isi         string         `gorm:"column:isi;type:text;not null" json:"isi"`
	KelasID     *uuid.UUID     `gorm:"column:kelas_id;type:uuid;index" json:"kelasId,omitempty"`
	TargetRoles pq.StringArray `gorm:"column:target_roles;type:text[]" json:"targetRoles"`
	DibuatOleh  uuid.UUID      `gorm:"column:dibuat_oleh;type:uuid;not null" json:"dibuatOleh"`
	Penerima    int            `gorm:"column:penerima;not null;default:0" json:"penerima"` // jumlah notifikasi terkirim

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime;index" json:"createdAt"`
}

func (PengumumanModel) TableName() string { return "pengumuman" }

// Targets: kosong = semua
func (p PengumumanModel) Targets(role string) bool {
	if len(p.TargetRoles) == 0 {
		return true
	}
	for _, r := range p.TargetRoles {
		if r == role {
			return true
		}
	}
	return false
}
