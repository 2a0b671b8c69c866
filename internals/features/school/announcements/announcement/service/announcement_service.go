package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	notifModel "sekolahku_backend/internals/features/notifications/model"
	notif "sekolahku_backend/internals/features/notifications/service"
	"sekolahku_backend/internals/features/school/announcements/announcement/model"
	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var ErrNotFound = errors.New("not found")

type ListFilter struct {
	// nil = tanpa filter kelas; selain itu: umum + kelas-kelas ini
	KelasIDs []uuid.UUID
	Role     string // kosong = semua target
	Offset   int
	Limit    int
}

type Store interface {
	Create(ctx context.Context, p *model.PengumumanModel) error
	SetPenerima(ctx context.Context, id uuid.UUID, n int) error
	List(ctx context.Context, f ListFilter) ([]model.PengumumanModel, int64, error)

	KelasExists(ctx context.Context, kelasID uuid.UUID) (bool, error)
	// guru boleh mengumumkan ke kelas yang diajar / diwalikan
	GuruHandlesKelas(ctx context.Context, guruID, kelasID uuid.UUID) (bool, error)
	SiswaKelas(ctx context.Context, siswaID uuid.UUID) (*uuid.UUID, error)
	// penerima aktif sesuai kelas (nil = semua) dan role target (kosong = semua)
	Recipients(ctx context.Context, kelasID *uuid.UUID, roles []string) ([]uuid.UUID, error)
}

type Service struct {
	store    Store
	notifier notif.Notifier
}

func New(store Store, notifier notif.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

type CreateInput struct {
	Judul       string
	Isi         string
	KelasID     *uuid.UUID
	TargetRoles []string
}

// Create menyimpan pengumuman lalu fan-out notifikasi ke penerima.
// Gagal kirim notifikasi tidak membatalkan pengumuman.
func (s *Service) Create(ctx context.Context, actor helperAuth.Actor, in CreateInput) (*model.PengumumanModel, error) {
	switch actor.Role {
	case constants.RoleSuperAdmin:
	case constants.RoleGuru:
		if in.KelasID == nil {
			return nil, helper.NewForbidden("GLOBAL_ANNOUNCEMENT_ADMIN_ONLY", "Pengumuman umum hanya untuk super admin")
		}
	case constants.RoleSiswa:
		return nil, helper.NewForbidden("FORBIDDEN", "Siswa tidak dapat membuat pengumuman")
	default:
		return nil, helper.NewForbidden("FORBIDDEN", "Role tidak dikenal")
	}

	if in.KelasID != nil {
		ok, err := s.store.KelasExists(ctx, *in.KelasID)
		if err != nil {
			return nil, helper.NewServer("gagal memuat kelas", err)
		}
		if !ok {
			return nil, helper.NewNotFound("KELAS_NOT_FOUND", "Kelas tidak ditemukan")
		}
		if actor.Role == constants.RoleGuru {
			ok, err := s.store.GuruHandlesKelas(ctx, actor.UserID, *in.KelasID)
			if err != nil {
				return nil, helper.NewServer("gagal memeriksa kelas guru", err)
			}
			if !ok {
				return nil, helper.NewForbidden("NOT_KELAS_TEACHER", "Anda tidak mengajar di kelas ini")
			}
		}
	}

	p := &model.PengumumanModel{
		ID:          uuid.New(),
		Judul:       in.Judul,
		Isi:         in.Isi,
		KelasID:     in.KelasID,
		TargetRoles: in.TargetRoles,
		DibuatOleh:  actor.UserID,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, helper.NewServer("gagal menyimpan pengumuman", err)
	}

	recipients, err := s.store.Recipients(ctx, in.KelasID, in.TargetRoles)
	if err != nil {
		log.Printf("[ERROR] pengumuman %s: gagal memuat penerima: %v", p.ID, err)
		return p, nil
	}
	recipients = without(recipients, actor.UserID)

	res, err := s.notifier.Notify(ctx, notif.Message{
		Recipients: recipients,
		Jenis:      notifModel.JenisPengumuman,
		Judul:      p.Judul,
		Pesan:      preview(p.Isi, 140),
		RefType:    "pengumuman",
		RefID:      &p.ID,
	})
	if err != nil {
		log.Printf("[ERROR] pengumuman %s: notifikasi gagal: %v", p.ID, err)
		return p, nil
	}
	p.Penerima = res.Stored
	if err := s.store.SetPenerima(ctx, p.ID, res.Stored); err != nil {
		log.Printf("[ERROR] pengumuman %s: update penerima: %v", p.ID, err)
	}
	return p, nil
}

// List: siswa hanya melihat pengumuman umum + kelasnya yang ditujukan ke siswa.
func (s *Service) List(ctx context.Context, actor helperAuth.Actor, p helper.Params) ([]model.PengumumanModel, int64, error) {
	f := ListFilter{Offset: p.Offset(), Limit: p.Limit()}

	switch actor.Role {
	case constants.RoleSiswa:
		kelasID, err := s.store.SiswaKelas(ctx, actor.UserID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, 0, helper.NewServer("gagal memuat kelas siswa", err)
		}
		f.KelasIDs = []uuid.UUID{}
		if kelasID != nil {
			f.KelasIDs = append(f.KelasIDs, *kelasID)
		}
		f.Role = string(constants.RoleSiswa)
	case constants.RoleGuru, constants.RoleSuperAdmin:
	default:
		return nil, 0, helper.NewForbidden("FORBIDDEN", "Role tidak dikenal")
	}

	rows, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, 0, helper.NewServer("gagal memuat pengumuman", err)
	}
	return rows, total, nil
}

func without(ids []uuid.UUID, drop uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
