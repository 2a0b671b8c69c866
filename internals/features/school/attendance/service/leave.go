package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	notifModel "sekolahku_backend/internals/features/notifications/model"
	notif "sekolahku_backend/internals/features/notifications/service"
	m "sekolahku_backend/internals/features/school/attendance/model"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
)

type SubmitLeaveInput struct {
	Tanggal    string
	Keterangan m.Keterangan // izin|sakit
	Alasan     string
	BuktiURL   *string
}

// SubmitLeave: siswa mengajukan izin/sakit untuk satu tanggal.
// Wali kelas diberi notifikasi.
func (s *Service) SubmitLeave(ctx context.Context, siswaID uuid.UUID, in SubmitLeaveInput) (*m.PengajuanAbsensiModel, error) {
	if !in.Keterangan.IsLeave() {
		return nil, helper.NewValidation("INVALID_KETERANGAN", "keterangan pengajuan harus izin atau sakit")
	}
	tanggal, ok := dbtime.NormalizeDate(in.Tanggal)
	if !ok {
		return nil, helper.NewValidation("INVALID_TANGGAL", "tanggal harus berformat YYYY-MM-DD")
	}
	alasan := strings.TrimSpace(in.Alasan)
	if alasan == "" {
		return nil, helper.NewValidation("ALASAN_REQUIRED", "alasan wajib diisi")
	}

	siswa, err := s.store.GetUser(ctx, siswaID)
	if err != nil {
		return nil, loadErr(err, errUserNotFound())
	}
	if siswa.Role != constants.RoleSiswa || siswa.KelasID == nil {
		return nil, helper.NewForbidden("NOT_STUDENT", "Hanya siswa terdaftar yang dapat mengajukan izin")
	}

	switch _, err := s.store.FindOpenPengajuan(ctx, siswaID, tanggal); {
	case err == nil:
		return nil, helper.NewConflict("PENGAJUAN_EXISTS", "Sudah ada pengajuan untuk tanggal ini")
	case !errors.Is(err, ErrNotFound):
		return nil, helper.NewServer("gagal memeriksa pengajuan", err)
	}

	p := &m.PengajuanAbsensiModel{
		ID:         uuid.New(),
		SiswaID:    siswaID,
		Tanggal:    tanggal,
		Keterangan: in.Keterangan,
		Alasan:     alasan,
		BuktiURL:   in.BuktiURL,
		Status:     m.StatusPending,
	}
	if err := s.store.CreatePengajuan(ctx, p); err != nil {
		return nil, helper.NewServer("gagal menyimpan pengajuan", err)
	}

	if kelas, err := s.store.GetKelas(ctx, *siswa.KelasID); err == nil && kelas.WaliKelasID != nil {
		s.notify(ctx, notif.Message{
			Recipients: []uuid.UUID{*kelas.WaliKelasID},
			Jenis:      notifModel.JenisPengajuanBaru,
			Judul:      "Pengajuan " + string(p.Keterangan) + " baru",
			Pesan:      fmt.Sprintf("%s mengajukan %s untuk %s", siswa.Nama, p.Keterangan, p.Tanggal),
			RefType:    "pengajuan_absensi",
			RefID:      uuidPtr(p.ID),
		})
	}
	return p, nil
}

type ReviewLeaveInput struct {
	Status  m.StatusPengajuan // disetujui|ditolak
	Catatan *string
}

type ReviewLeaveResult struct {
	Pengajuan *m.PengajuanAbsensiModel
	// jumlah absensi yang berubah ke keterangan pengajuan (0 kalau ditolak)
	UpdatedAbsensi int64
}

// ReviewLeave memutus pengajuan pending.
// Disetujui → semua absensi siswa pada tanggal tsb menjadi izin/sakit.
// Ditolak → absensi tidak disentuh. Siswa diberi notifikasi keduanya.
func (s *Service) ReviewLeave(ctx context.Context, actor helperAuth.Actor, id uuid.UUID, in ReviewLeaveInput) (*ReviewLeaveResult, error) {
	if !in.Status.IsDecision() {
		return nil, helper.NewValidation("INVALID_STATUS", "status harus disetujui atau ditolak")
	}

	p, err := s.store.GetPengajuan(ctx, id)
	if err != nil {
		return nil, loadErr(err, errPengajuanNotFound())
	}

	// otorisasi dicek sebelum status pending
	siswa, err := s.store.GetUser(ctx, p.SiswaID)
	if err != nil {
		return nil, loadErr(err, errUserNotFound())
	}
	var kelas *kelasModel.KelasModel
	if siswa.KelasID != nil {
		k, err := s.store.GetKelas(ctx, *siswa.KelasID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, helper.NewServer("gagal memuat kelas", err)
		}
		kelas = k
	}
	if !canReviewLeave(actor, kelas) {
		return nil, helper.NewForbidden(CodeNotWaliKelas, "Hanya wali kelas atau admin yang dapat mereview pengajuan ini")
	}

	if p.Status != m.StatusPending {
		return nil, helper.NewConflict(CodeAlreadyReviewed, "Pengajuan sudah direview")
	}

	now := s.now()
	p.Status = in.Status
	p.ReviewerID = uuidPtr(actor.UserID)
	p.CatatanReviewer = in.Catatan
	p.ReviewedAt = &now

	var updated int64
	err = s.store.Tx(ctx, func(tx Store) error {
		ok, err := tx.MarkReviewed(ctx, p)
		if err != nil {
			return err
		}
		if !ok {
			return helper.NewConflict(CodeAlreadyReviewed, "Pengajuan sudah direview")
		}
		if p.Status == m.StatusDisetujui {
			n, err := tx.SetKeteranganForDate(ctx, p.SiswaID, p.Tanggal, p.Keterangan)
			if err != nil {
				return err
			}
			updated = n
		}
		return nil
	})
	if err != nil {
		if helper.AsAppError(err) != nil {
			return nil, err
		}
		return nil, helper.NewServer("gagal menyimpan review", err)
	}

	s.notify(ctx, notif.Message{
		Recipients: []uuid.UUID{p.SiswaID},
		Jenis:      notifModel.JenisReviewPengajuan,
		Judul:      "Pengajuan " + string(p.Keterangan) + " " + string(p.Status),
		Pesan:      fmt.Sprintf("Pengajuan %s tanggal %s telah %s", p.Keterangan, p.Tanggal, p.Status),
		RefType:    "pengajuan_absensi",
		RefID:      uuidPtr(p.ID),
		Data:       map[string]any{"status": string(p.Status)},
	})
	return &ReviewLeaveResult{Pengajuan: p, UpdatedAbsensi: updated}, nil
}

// ListLeave: siswa → miliknya, guru → kelas yang diwalikan, admin → semua
func (s *Service) ListLeave(ctx context.Context, actor helperAuth.Actor, status *m.StatusPengajuan, tanggal string, p helper.Params) ([]m.PengajuanAbsensiModel, int64, error) {
	f := PengajuanFilter{Status: status, Offset: p.Offset(), Limit: p.Limit()}
	if tanggal != "" {
		t, ok := dbtime.NormalizeDate(tanggal)
		if !ok {
			return nil, 0, helper.NewValidation("INVALID_TANGGAL", "tanggal harus berformat YYYY-MM-DD")
		}
		f.Tanggal = t
	}

	switch pengajuanScope(actor.Role) {
	case scopeOwn:
		f.SiswaID = uuidPtr(actor.UserID)
	case scopeWali:
		kelas, err := s.store.ListKelasByWali(ctx, actor.UserID)
		if err != nil {
			return nil, 0, helper.NewServer("gagal memuat kelas", err)
		}
		f.KelasIDs = make([]uuid.UUID, 0, len(kelas))
		for _, k := range kelas {
			f.KelasIDs = append(f.KelasIDs, k.ID)
		}
		if len(f.KelasIDs) == 0 {
			return []m.PengajuanAbsensiModel{}, 0, nil
		}
	case scopeAll:
	default:
		return nil, 0, helper.NewForbidden("ROLE_FORBIDDEN", "Role tidak dikenal")
	}

	rows, total, err := s.store.ListPengajuan(ctx, f)
	if err != nil {
		return nil, 0, helper.NewServer("gagal memuat pengajuan", err)
	}
	return rows, total, nil
}
