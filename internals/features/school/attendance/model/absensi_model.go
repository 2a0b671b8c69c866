package model

import (
	"time"

	"github.com/google/uuid"
)

const UniqueAbsensiHarian = "uq_absensi_siswa_jadwal_tanggal"

// AbsensiModel = satu catatan kehadiran per (siswa, jadwal, tanggal).
type AbsensiModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID     uuid.UUID  `gorm:"column:siswa_id;type:uuid;not null;uniqueIndex:uq_absensi_siswa_jadwal_tanggal,priority:1" json:"siswaId"`
	JadwalID    uuid.UUID  `gorm:"column:jadwal_id;type:uuid;not null;uniqueIndex:uq_absensi_siswa_jadwal_tanggal,priority:2" json:"jadwalId"`
	Tanggal     string     `gorm:"column:tanggal;type:varchar(10);not null;uniqueIndex:uq_absensi_siswa_jadwal_tanggal,priority:3" json:"tanggal"`
	SesiID      *uuid.UUID `gorm:"column:sesi_id;type:uuid" json:"sesiId,omitempty"` // null = manual
	Metode      Metode     `gorm:"column:metode;type:varchar(10);not null" json:"metode"`
	Latitude    *float64   `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude   *float64   `gorm:"column:longitude" json:"longitude,omitempty"`
	Waktu       time.Time  `gorm:"column:waktu;type:timestamptz;not null" json:"waktu"`
	Keterangan  Keterangan `gorm:"column:keterangan;type:varchar(10);not null" json:"keterangan"`
	DicatatOleh *uuid.UUID `gorm:"column:dicatat_oleh;type:uuid" json:"dicatatOleh,omitempty"` // guru (manual)

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AbsensiModel) TableName() string { return "absensi" }
