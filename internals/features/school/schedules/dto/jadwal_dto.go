package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/helpers/dbtime"
)

type CreateJadwalRequest struct {
	KelasID       uuid.UUID `json:"kelasId" validate:"required"`
	MataPelajaran string    `json:"mataPelajaran" validate:"required,max=120"`
	GuruID        uuid.UUID `json:"guruId" validate:"required"`
	Hari          *int      `json:"hari" validate:"required,min=0,max=6"` // 0=Minggu
	JamMulai      string    `json:"jamMulai" validate:"required"`         // "HH:MM"
	JamSelesai    string    `json:"jamSelesai" validate:"required"`
	Semester      int       `json:"semester" validate:"required,oneof=1 2"`
	TahunAjaran   string    `json:"tahunAjaran" validate:"required,len=9"`
}

// ToModel parse jam; error kalau format salah atau selesai <= mulai
func (r CreateJadwalRequest) ToModel() (*model.JadwalModel, error) {
	mulai, selesai, err := parseJam(r.JamMulai, r.JamSelesai)
	if err != nil {
		return nil, err
	}
	return &model.JadwalModel{
		KelasID:       r.KelasID,
		MataPelajaran: strings.TrimSpace(r.MataPelajaran),
		GuruID:        r.GuruID,
		Hari:          *r.Hari,
		JamMulai:      mulai,
		JamSelesai:    selesai,
		Semester:      r.Semester,
		TahunAjaran:   strings.TrimSpace(r.TahunAjaran),
		IsActive:      true,
	}, nil
}

// PATCH (partial)
type UpdateJadwalRequest struct {
	MataPelajaran *string    `json:"mataPelajaran" validate:"omitempty,max=120"`
	GuruID        *uuid.UUID `json:"guruId" validate:"omitempty"`
	Hari          *int       `json:"hari" validate:"omitempty,min=0,max=6"`
	JamMulai      *string    `json:"jamMulai" validate:"omitempty"`
	JamSelesai    *string    `json:"jamSelesai" validate:"omitempty"`
	IsActive      *bool      `json:"isActive" validate:"omitempty"`
}

// Apply ke model existing
func (r UpdateJadwalRequest) Apply(j *model.JadwalModel) error {
	if r.MataPelajaran != nil {
		j.MataPelajaran = strings.TrimSpace(*r.MataPelajaran)
	}
	if r.GuruID != nil {
		j.GuruID = *r.GuruID
	}
	if r.Hari != nil {
		j.Hari = *r.Hari
	}
	if r.IsActive != nil {
		j.IsActive = *r.IsActive
	}
	mulai, selesai := j.JamMulai.String(), j.JamSelesai.String()
	if r.JamMulai != nil {
		mulai = *r.JamMulai
	}
	if r.JamSelesai != nil {
		selesai = *r.JamSelesai
	}
	m, s, err := parseJam(mulai, selesai)
	if err != nil {
		return err
	}
	j.JamMulai, j.JamSelesai = m, s
	return nil
}

type ListJadwalQuery struct {
	KelasID string `query:"kelasId"`
	GuruID  string `query:"guruId"`
	Hari    *int   `query:"hari"`
}

type jamError string

func (e jamError) Error() string { return string(e) }

const (
	ErrJamFormat = jamError("jam harus berformat HH:MM")
	ErrJamUrutan = jamError("jamSelesai harus setelah jamMulai")
)

func parseJam(mulai, selesai string) (dbtime.Tod, dbtime.Tod, error) {
	m, err := dbtime.Parse(mulai)
	if err != nil {
		return dbtime.Tod{}, dbtime.Tod{}, ErrJamFormat
	}
	s, err := dbtime.Parse(selesai)
	if err != nil {
		return dbtime.Tod{}, dbtime.Tod{}, ErrJamFormat
	}
	if !s.After(m.Time) {
		return dbtime.Tod{}, dbtime.Tod{}, ErrJamUrutan
	}
	return m, s, nil
}
