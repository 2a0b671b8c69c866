package model

import (
	"time"

	"github.com/google/uuid"
)

// SesiPresensiModel = jendela check-in QR untuk satu jadwal pada satu tanggal.
type SesiPresensiModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JadwalID   uuid.UUID `gorm:"column:jadwal_id;type:uuid;not null;index:idx_sesi_jadwal_tanggal" json:"jadwalId"`
	Tanggal    string    `gorm:"column:tanggal;type:varchar(10);not null;index:idx_sesi_jadwal_tanggal" json:"tanggal"`
	Kode       string    `gorm:"column:kode;type:varchar(12);not null;uniqueIndex:uq_sesi_presensi_kode" json:"kodeSesi"`
	Latitude   float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude  float64   `gorm:"column:longitude;not null" json:"longitude"`
	ExpiredAt  time.Time `gorm:"column:expired_at;type:timestamptz;not null;index" json:"expiredAt"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
	DibuatOleh uuid.UUID `gorm:"column:dibuat_oleh;type:uuid;not null" json:"dibuatOleh"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (SesiPresensiModel) TableName() string { return "sesi_presensi" }

// ActiveAt: aktif dan expired_at masih di depan (strict)
func (s SesiPresensiModel) ActiveAt(now time.Time) bool {
	return s.IsActive && s.ExpiredAt.After(now)
}
