package service_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/service"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/helpers/geo"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestRandomCode_AlphabetAndLength(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := service.RandomCode(6)
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestCreateSession_NewThenIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	first, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)
	assert.False(t, first.IsExisting)
	assert.Regexp(t, codePattern, first.Session.Kode)
	assert.True(t, first.Session.ExpiredAt.Equal(f.now.Add(30*time.Minute)))
	assert.Equal(t, "2025-03-10", first.Session.Tanggal)
	assert.True(t, first.Session.IsActive)

	f.now = f.now.Add(10 * time.Minute)
	second, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.True(t, second.IsExisting)
	assert.Equal(t, first.Session.Kode, second.Session.Kode)
	assert.Equal(t, first.Session.ID, second.Session.ID)
}

func TestCreateSession_AfterExpiryIssuesNewCode(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	first := f.openSession(svc, geo.Point{})

	f.now = first.ExpiredAt
	res, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{})
	require.NoError(t, err)
	assert.False(t, res.IsExisting)
	assert.NotEqual(t, first.ID, res.Session.ID)
}

func TestCreateSession_Forbidden(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.CreateSession(f.ctx, actor(f.wali), f.jadwal.ID, geo.Point{})
	assert.True(t, helper.IsKind(err, helper.KindForbidden), "bukan pengajar jadwal")

	_, err = svc.CreateSession(f.ctx, actor(f.admin), f.jadwal.ID, geo.Point{})
	assert.True(t, helper.IsKind(err, helper.KindForbidden), "admin tidak mengajar")

	inactive := f.store.PutJadwal(jadwalModel.JadwalModel{
		KelasID: f.kelas.ID, GuruID: f.guru.ID, MataPelajaran: "IPA",
		JamMulai: dbtime.MustParse("10:00"), JamSelesai: dbtime.MustParse("11:00"), IsActive: false,
	})
	_, err = svc.CreateSession(f.ctx, actor(f.guru), inactive.ID, geo.Point{})
	assert.True(t, helper.HasCode(err, "JADWAL_INACTIVE"))
}

func TestCreateSession_UnknownJadwal(t *testing.T) {
	f := newFixture(t)
	_, err := f.service().CreateSession(f.ctx, actor(f.guru), uuid.New(), geo.Point{})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestCreateSession_RetriesOnCodeCollision(t *testing.T) {
	f := newFixture(t)
	f.store.PutSession(m.SesiPresensiModel{Kode: "AAAAAA", JadwalID: uuid.New(), Tanggal: f.today(), IsActive: true, ExpiredAt: f.now.Add(time.Hour)})

	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	calls := 0
	svc := f.service(service.WithCodeGenerator(func(int) (string, error) {
		c := codes[calls]
		calls++
		return c, nil
	}))

	res, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", res.Session.Kode)
	assert.Equal(t, 3, calls)
}

func TestCreateSession_GivesUpAfterFiveCollisions(t *testing.T) {
	f := newFixture(t)
	f.store.PutSession(m.SesiPresensiModel{Kode: "AAAAAA", JadwalID: uuid.New(), IsActive: true, ExpiredAt: f.now.Add(time.Hour)})

	calls := 0
	svc := f.service(service.WithCodeGenerator(func(int) (string, error) {
		calls++
		return "AAAAAA", nil
	}))
	_, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{})
	assert.True(t, helper.IsKind(err, helper.KindServer))
	assert.Equal(t, 5, calls)
}

func TestFindActiveSession_StrictExpiry(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	f.now = sesi.ExpiredAt.Add(-time.Nanosecond)
	got, err := svc.FindActiveSession(f.ctx, " "+sesi.Kode+" ")
	require.NoError(t, err)
	assert.Equal(t, sesi.ID, got.ID)

	f.now = sesi.ExpiredAt
	_, err = svc.FindActiveSession(f.ctx, sesi.Kode)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestFindActiveSession_InactiveAndUnknownLookTheSame(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.EndSession(f.ctx, actor(f.guru), sesi.ID)
	require.NoError(t, err)

	_, errEnded := svc.FindActiveSession(f.ctx, sesi.Kode)
	_, errUnknown := svc.FindActiveSession(f.ctx, "ZZZZZZ")
	require.Error(t, errEnded)
	assert.Equal(t, errUnknown.Error(), errEnded.Error())
}

func TestEndSession_OnlyTeacherOrAdmin(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	_, err := svc.EndSession(f.ctx, actor(f.wali), sesi.ID)
	assert.True(t, helper.IsKind(err, helper.KindForbidden))

	ended, err := svc.EndSession(f.ctx, actor(f.admin), sesi.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)

	// setelah ditutup, guru bisa membuka sesi baru
	res, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, geo.Point{})
	require.NoError(t, err)
	assert.False(t, res.IsExisting)
}

func TestReapExpired(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	sesi := f.openSession(svc, geo.Point{})

	n, err := svc.ReapExpired(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = sesi.ExpiredAt
	n, err = svc.ReapExpired(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
