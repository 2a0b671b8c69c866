package model

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/helpers/dbtime"
)

// JadwalModel = slot mingguan (kelas × mapel × guru × hari × jam)
type JadwalModel struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	KelasID       uuid.UUID  `gorm:"column:kelas_id;type:uuid;not null;index" json:"kelasId"`
	MataPelajaran string     `gorm:"column:mata_pelajaran;size:120;not null" json:"mataPelajaran"`
	GuruID        uuid.UUID  `gorm:"column:guru_id;type:uuid;not null;index" json:"guruId"`
	Hari          int        `gorm:"column:hari;not null;index:idx_jadwal_hari_active" json:"hari"` // 0=Minggu .. 6=Sabtu
	JamMulai      dbtime.Tod `gorm:"column:jam_mulai;not null" json:"jamMulai"`
	JamSelesai    dbtime.Tod `gorm:"column:jam_selesai;not null" json:"jamSelesai"`
	Semester      int        `gorm:"column:semester;not null" json:"semester"`
	TahunAjaran   string     `gorm:"column:tahun_ajaran;size:9;not null" json:"tahunAjaran"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true;index:idx_jadwal_hari_active" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (JadwalModel) TableName() string { return "jadwal" }

// StartsOn: waktu mulai pada tanggal tertentu (zona sekolah)
func (j JadwalModel) StartsOn(date time.Time, loc *time.Location) time.Time {
	return j.JamMulai.On(date, loc)
}
