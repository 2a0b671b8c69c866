package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	notif "sekolahku_backend/internals/features/notifications/service"
	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/repository"
	"sekolahku_backend/internals/features/school/attendance/service"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/helpers/geo"
)

var wib = time.FixedZone("WIB", 7*60*60)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notif.Message
}

func (r *recordingNotifier) Notify(_ context.Context, msg notif.Message) (notif.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return notif.Result{Stored: len(msg.Recipients)}, nil
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	now   time.Time
	cfg   configs.Settings
	store *repository.MemoryStore
	notes *recordingNotifier

	guru, wali, siswa, siswaLain, admin userModel.UserModel
	kelas, kelasLain                    kelasModel.KelasModel
	jadwal                              jadwalModel.JadwalModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := configs.DefaultSettings()
	cfg.Location = wib

	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		now:   time.Date(2025, 3, 10, 8, 0, 0, 0, wib), // Senin
		cfg:   cfg,
		store: repository.NewMemoryStore(),
		notes: &recordingNotifier{},
	}

	f.guru = f.store.PutUser(userModel.UserModel{Nama: "Bu Sari", Role: constants.RoleGuru, IsActive: true})
	f.wali = f.store.PutUser(userModel.UserModel{Nama: "Pak Budi", Role: constants.RoleGuru, IsActive: true})
	f.admin = f.store.PutUser(userModel.UserModel{Nama: "Admin", Role: constants.RoleSuperAdmin, IsActive: true})

	f.kelas = f.store.PutKelas(kelasModel.KelasModel{Nama: "X IPA 1", Tingkat: 10, WaliKelasID: &f.wali.ID, TahunAjaran: "2024/2025"})
	f.kelasLain = f.store.PutKelas(kelasModel.KelasModel{Nama: "X IPA 2", Tingkat: 10, TahunAjaran: "2024/2025"})

	f.siswa = f.store.PutUser(userModel.UserModel{Nama: "Andi", Role: constants.RoleSiswa, KelasID: &f.kelas.ID, IsActive: true})
	f.siswaLain = f.store.PutUser(userModel.UserModel{Nama: "Bayu", Role: constants.RoleSiswa, KelasID: &f.kelasLain.ID, IsActive: true})

	f.jadwal = f.store.PutJadwal(jadwalModel.JadwalModel{
		KelasID:       f.kelas.ID,
		MataPelajaran: "Matematika",
		GuruID:        f.guru.ID,
		Hari:          1,
		JamMulai:      dbtime.MustParse("08:00"),
		JamSelesai:    dbtime.MustParse("09:30"),
		Semester:      2,
		TahunAjaran:   "2024/2025",
		IsActive:      true,
	})
	return f
}

func (f *fixture) service(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithClock(func() time.Time { return f.now })}, opts...)
	return service.New(f.store, f.notes, f.cfg, opts...)
}

func (f *fixture) production() { f.cfg.EnforceGeofence = true }

func actor(u userModel.UserModel) helperAuth.Actor {
	return helperAuth.Actor{UserID: u.ID, Role: u.Role}
}

func (f *fixture) openSession(svc *service.Service, anchor geo.Point) *m.SesiPresensiModel {
	f.t.Helper()
	res, err := svc.CreateSession(f.ctx, actor(f.guru), f.jadwal.ID, anchor)
	require.NoError(f.t, err)
	require.False(f.t, res.IsExisting)
	return res.Session
}

func (f *fixture) today() string { return dbtime.DateString(f.now, wib) }

func (f *fixture) absensiOf(siswaID uuid.UUID) []m.AbsensiModel {
	var out []m.AbsensiModel
	for _, a := range f.store.AllAbsensi() {
		if a.SiswaID == siswaID {
			out = append(out, a)
		}
	}
	return out
}
