package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/helpers/dbtime"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCreateJadwalRequest_ToModel(t *testing.T) {
	req := CreateJadwalRequest{
		KelasID: uuid.New(), GuruID: uuid.New(), MataPelajaran: " Kimia ",
		Hari: intPtr(0), JamMulai: "07:30", JamSelesai: "09:00", Semester: 1, TahunAjaran: "2025/2026",
	}
	j, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "Kimia", j.MataPelajaran)
	assert.Equal(t, 0, j.Hari)
	assert.Equal(t, "07:30", j.JamMulai.String())
	assert.True(t, j.IsActive)

	req.JamSelesai = "07:30"
	_, err = req.ToModel()
	assert.ErrorIs(t, err, ErrJamUrutan)

	req.JamSelesai = "9 pagi"
	_, err = req.ToModel()
	assert.ErrorIs(t, err, ErrJamFormat)
}

func TestUpdateJadwalRequest_Apply(t *testing.T) {
	j := model.JadwalModel{Hari: 1, JamMulai: dbtime.MustParse("08:00"), JamSelesai: dbtime.MustParse("09:00"), IsActive: true}

	require.NoError(t, UpdateJadwalRequest{JamSelesai: strPtr("10:00"), Hari: intPtr(3)}.Apply(&j))
	assert.Equal(t, 3, j.Hari)
	assert.Equal(t, "08:00", j.JamMulai.String())
	assert.Equal(t, "10:00", j.JamSelesai.String())

	err := UpdateJadwalRequest{JamMulai: strPtr("11:00")}.Apply(&j)
	assert.ErrorIs(t, err, ErrJamUrutan)
}
