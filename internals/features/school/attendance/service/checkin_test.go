package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/geo"
)

// 600 m ke utara dari (0,0)
var sixHundredNorth = geo.Point{Latitude: 600 / (geo.EarthRadiusMeters * math.Pi / 180), Longitude: 0}

func fixedDistance(d float64) service.Option {
	return service.WithDistance(func(_, _ geo.Point) float64 { return d })
}

func TestCheckIn_Success(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{Latitude: -6.2, Longitude: 106.8})

	res, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)
	assert.Equal(t, m.KeteranganHadir, res.Absensi.Keterangan)
	assert.Equal(t, m.MetodeOtomatis, res.Absensi.Metode)
	assert.Equal(t, "2025-03-10", res.Absensi.Tanggal)
	require.NotNil(t, res.Absensi.SesiID)
	assert.Equal(t, sesi.ID, *res.Absensi.SesiID)
	assert.Len(t, f.absensiOf(f.siswa.ID), 1)
}

func TestCheckIn_RadiusBoundary(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		wantErr  bool
	}{
		{"tepat 500 m diterima", 500, false},
		{"500.01 m ditolak", 500.01, true},
		{"jauh di dalam radius", 12, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.production()
			svc := f.service(fixedDistance(tc.distance))
			sesi := f.openSession(svc, geo.Point{})

			_, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, helper.HasCode(err, service.CodeOutOfRange))
				assert.True(t, helper.IsKind(err, helper.KindForbidden))
				assert.Empty(t, f.absensiOf(f.siswa.ID))
				return
			}
			require.NoError(t, err)
			assert.Len(t, f.absensiOf(f.siswa.ID), 1)
		})
	}
}

func TestCheckIn_SixHundredMeters_ProductionVsDevelopment(t *testing.T) {
	t.Run("production menolak dengan jarak", func(t *testing.T) {
		f := newFixture(t)
		f.production()
		svc := f.service()
		sesi := f.openSession(svc, geo.Point{Latitude: 0, Longitude: 0})

		_, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, sixHundredNorth)
		require.Error(t, err)
		ae := helper.AsAppError(err)
		require.NotNil(t, ae)
		assert.Equal(t, service.CodeOutOfRange, ae.Code)
		assert.InDelta(t, 600, ae.Data["distance"], 0.5)
		assert.Empty(t, f.absensiOf(f.siswa.ID))
	})

	t.Run("non-production diterima", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service()
		sesi := f.openSession(svc, geo.Point{Latitude: 0, Longitude: 0})

		res, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, sixHundredNorth)
		require.NoError(t, err)
		assert.InDelta(t, 600, res.Distance, 0.5)
	})
}

func TestCheckIn_InvalidCode(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.CheckIn(f.ctx, f.siswa.ID, "NOPE00", geo.Point{})
	assert.True(t, helper.HasCode(err, service.CodeInvalidSession))
	assert.True(t, helper.IsKind(err, helper.KindValidation))
}

func TestCheckIn_ExpiredSessionIsInvalid(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	f.now = sesi.ExpiredAt
	_, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	assert.True(t, helper.HasCode(err, service.CodeInvalidSession))
}

func TestCheckIn_WrongClassForbidden(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.CheckIn(f.ctx, f.siswaLain.ID, sesi.Kode, geo.Point{})
	assert.True(t, helper.IsKind(err, helper.KindForbidden))
	assert.True(t, helper.HasCode(err, service.CodeNotInClass))
	assert.Empty(t, f.absensiOf(f.siswaLain.ID))
}

func TestCheckIn_SequentialDuplicate(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	require.NoError(t, err)

	_, err = svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	assert.True(t, helper.HasCode(err, service.CodeDuplicateCheckIn))
	assert.Equal(t, 400, helper.AsAppError(err).Kind.Status())
	assert.Len(t, f.absensiOf(f.siswa.ID), 1)
}

func TestCheckIn_OverIzinIsConflict(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.ManualEntry(f.ctx, actor(f.guru), service.ManualEntryInput{
		SiswaID: f.siswa.ID, JadwalID: f.jadwal.ID, Keterangan: m.KeteranganIzin, Tanggal: f.today(),
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	assert.True(t, helper.HasCode(err, service.CodeLeaveConflict))
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	recs := f.absensiOf(f.siswa.ID)
	require.Len(t, recs, 1)
	assert.Equal(t, m.KeteranganIzin, recs[0].Keterangan)
}

func TestCheckIn_ApprovedLeaveWithoutRecordIsConflict(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	p, err := svc.SubmitLeave(f.ctx, f.siswa.ID, service.SubmitLeaveInput{
		Tanggal: f.today(), Keterangan: m.KeteranganSakit, Alasan: "demam",
	})
	require.NoError(t, err)
	_, err = svc.ReviewLeave(f.ctx, actor(f.wali), p.ID, service.ReviewLeaveInput{Status: m.StatusDisetujui})
	require.NoError(t, err)

	_, err = svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	assert.True(t, helper.HasCode(err, service.CodeLeaveConflict))
	assert.Empty(t, f.absensiOf(f.siswa.ID))
}

func TestCheckIn_PendingLeaveDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.SubmitLeave(f.ctx, f.siswa.ID, service.SubmitLeaveInput{
		Tanggal: f.today(), Keterangan: m.KeteranganIzin, Alasan: "acara keluarga",
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(f.ctx, f.siswa.ID, sesi.Kode, geo.Point{})
	require.NoError(t, err)
}
