package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifModel "sekolahku_backend/internals/features/notifications/model"
	notif "sekolahku_backend/internals/features/notifications/service"
	"sekolahku_backend/internals/features/school/announcements/announcement/model"
	"sekolahku_backend/internals/features/school/announcements/announcement/service"
	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type fakeStore struct {
	created    []*model.PengumumanModel
	penerima   map[uuid.UUID]int
	kelas      map[uuid.UUID]bool
	handles    map[[2]uuid.UUID]bool
	recipients []uuid.UUID
	recErr     error
	lastFilter service.ListFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{penerima: map[uuid.UUID]int{}, kelas: map[uuid.UUID]bool{}, handles: map[[2]uuid.UUID]bool{}}
}

func (f *fakeStore) Create(_ context.Context, p *model.PengumumanModel) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakeStore) SetPenerima(_ context.Context, id uuid.UUID, n int) error {
	f.penerima[id] = n
	return nil
}
func (f *fakeStore) List(_ context.Context, fl service.ListFilter) ([]model.PengumumanModel, int64, error) {
	f.lastFilter = fl
	return nil, 0, nil
}
func (f *fakeStore) KelasExists(_ context.Context, id uuid.UUID) (bool, error) { return f.kelas[id], nil }
func (f *fakeStore) GuruHandlesKelas(_ context.Context, g, k uuid.UUID) (bool, error) {
	return f.handles[[2]uuid.UUID{g, k}], nil
}
func (f *fakeStore) SiswaKelas(_ context.Context, _ uuid.UUID) (*uuid.UUID, error) {
	return nil, service.ErrNotFound
}
func (f *fakeStore) Recipients(_ context.Context, _ *uuid.UUID, _ []string) ([]uuid.UUID, error) {
	return f.recipients, f.recErr
}

type recorder struct{ msgs []notif.Message }

func (r *recorder) Notify(_ context.Context, msg notif.Message) (notif.Result, error) {
	r.msgs = append(r.msgs, msg)
	return notif.Result{Stored: len(msg.Recipients)}, nil
}

func TestCreate_GuruFansOutToKelas(t *testing.T) {
	st, rec := newFakeStore(), &recorder{}
	guru, kelas := uuid.New(), uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	st.kelas[kelas] = true
	st.handles[[2]uuid.UUID{guru, kelas}] = true
	st.recipients = []uuid.UUID{s1, s2, guru}

	p, err := service.New(st, rec).Create(context.Background(),
		helperAuth.Actor{UserID: guru, Role: constants.RoleGuru},
		service.CreateInput{Judul: "Ulangan", Isi: "Besok ulangan bab 3", KelasID: &kelas})
	require.NoError(t, err)

	require.Len(t, rec.msgs, 1)
	assert.Equal(t, notifModel.JenisPengumuman, rec.msgs[0].Jenis)
	assert.ElementsMatch(t, []uuid.UUID{s1, s2}, rec.msgs[0].Recipients, "pembuat tidak ikut menerima")
	assert.Equal(t, 2, p.Penerima)
	assert.Equal(t, 2, st.penerima[p.ID])
}

func TestCreate_GuruOtherKelasForbidden(t *testing.T) {
	st, rec := newFakeStore(), &recorder{}
	kelas := uuid.New()
	st.kelas[kelas] = true

	_, err := service.New(st, rec).Create(context.Background(),
		helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleGuru},
		service.CreateInput{Judul: "Info", Isi: "Isi", KelasID: &kelas})
	assert.True(t, helper.IsKind(err, helper.KindForbidden))
	assert.Empty(t, st.created)
	assert.Empty(t, rec.msgs)
}

func TestCreate_GlobalRequiresAdmin(t *testing.T) {
	st, rec := newFakeStore(), &recorder{}
	svc := service.New(st, rec)

	_, err := svc.Create(context.Background(), helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleGuru},
		service.CreateInput{Judul: "Libur", Isi: "Libur nasional"})
	assert.True(t, helper.HasCode(err, "GLOBAL_ANNOUNCEMENT_ADMIN_ONLY"))

	st.recipients = []uuid.UUID{uuid.New()}
	_, err = svc.Create(context.Background(), helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleSuperAdmin},
		service.CreateInput{Judul: "Libur", Isi: "Libur nasional"})
	require.NoError(t, err)
	assert.Len(t, rec.msgs, 1)
}

func TestCreate_RecipientLookupFailureKeepsAnnouncement(t *testing.T) {
	st, rec := newFakeStore(), &recorder{}
	st.recErr = errors.New("db down")

	p, err := service.New(st, rec).Create(context.Background(),
		helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleSuperAdmin},
		service.CreateInput{Judul: "Rapat", Isi: "Rapat wali murid"})
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Len(t, st.created, 1)
	assert.Empty(t, rec.msgs)
}

func TestList_SiswaScopedToGlobalAndOwnKelas(t *testing.T) {
	st := newFakeStore()
	_, _, err := service.New(st, &recorder{}).List(context.Background(),
		helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleSiswa},
		helper.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.NotNil(t, st.lastFilter.KelasIDs)
	assert.Empty(t, st.lastFilter.KelasIDs)
	assert.Equal(t, "siswa", st.lastFilter.Role)
	assert.Equal(t, 10, st.lastFilter.Limit)
}
