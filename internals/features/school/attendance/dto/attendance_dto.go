package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/helpers/geo"
)

/* =========================
   Request
   ========================= */

// POST /presensi/check-in
type CheckInRequest struct {
	KodeSesi  string   `json:"kodeSesi" validate:"required,min=4,max=12"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r *CheckInRequest) Normalize() { r.KodeSesi = strings.ToUpper(strings.TrimSpace(r.KodeSesi)) }

func (r CheckInRequest) Point() geo.Point { return geo.Point{Latitude: *r.Latitude, Longitude: *r.Longitude} }

// POST /presensi/sesi
type CreateSessionRequest struct {
	JadwalID  uuid.UUID `json:"jadwalId" validate:"required"`
	Latitude  *float64  `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64  `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r CreateSessionRequest) Point() geo.Point {
	return geo.Point{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// POST /presensi/manual
type ManualEntryRequest struct {
	SiswaID    uuid.UUID `json:"siswaId" validate:"required"`
	JadwalID   uuid.UUID `json:"jadwalId" validate:"required"`
	Keterangan string    `json:"keterangan" validate:"required,oneof=hadir izin sakit alpa"`
	Tanggal    string    `json:"tanggal" validate:"required,datetime=2006-01-02"`
}

// POST /pengajuan-absensi (JSON atau multipart; file di field "bukti")
type SubmitLeaveRequest struct {
	Tanggal    string `json:"tanggal" form:"tanggal" validate:"required,datetime=2006-01-02"`
	Keterangan string `json:"keterangan" form:"keterangan" validate:"required,oneof=izin sakit"`
	Alasan     string `json:"alasan" form:"alasan" validate:"required,max=1000"`
	BuktiURL   string `json:"buktiUrl" form:"buktiUrl" validate:"omitempty,url"`
}

func (r *SubmitLeaveRequest) Normalize() {
	r.Tanggal = strings.TrimSpace(r.Tanggal)
	r.Keterangan = strings.ToLower(strings.TrimSpace(r.Keterangan))
	r.Alasan = strings.TrimSpace(r.Alasan)
	r.BuktiURL = strings.TrimSpace(r.BuktiURL)
}

// PATCH /pengajuan-absensi/:id/review
type ReviewLeaveRequest struct {
	Status  string  `json:"status" validate:"required,oneof=disetujui ditolak"`
	Catatan *string `json:"catatan" validate:"omitempty,max=1000"`
}

/* =========================
   Response
   ========================= */

type SessionResponse struct {
	ID         uuid.UUID `json:"id"`
	JadwalID   uuid.UUID `json:"jadwalId"`
	Tanggal    string    `json:"tanggal"`
	KodeSesi   string    `json:"kodeSesi"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ExpiredAt  time.Time `json:"expiredAt"`
	IsActive   bool      `json:"isActive"`
	IsExisting bool      `json:"isExisting"`
	QRCode     string    `json:"qrCode,omitempty"` // data:image/png;base64,...
}

func FromSession(s *m.SesiPresensiModel, existing bool, qr string) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		JadwalID:   s.JadwalID,
		Tanggal:    s.Tanggal,
		KodeSesi:   s.Kode,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		ExpiredAt:  s.ExpiredAt,
		IsActive:   s.IsActive,
		IsExisting: existing,
		QRCode:     qr,
	}
}

type CheckInResponse struct {
	Absensi  *m.AbsensiModel `json:"absensi"`
	Distance float64         `json:"distance"` // meter, dibulatkan
}

type ReviewLeaveResponse struct {
	Pengajuan      *m.PengajuanAbsensiModel `json:"pengajuan"`
	UpdatedAbsensi int64                    `json:"updatedAbsensi"`
}
