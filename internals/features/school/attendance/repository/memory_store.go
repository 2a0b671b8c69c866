package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	svc "sekolahku_backend/internals/features/school/attendance/service"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
)

// MemoryStore = svc.Store in-memory (test & demo lokal).
// Constraint unik sama dengan Postgres: sesi.kode dan absensi(siswa,jadwal,tanggal).
type MemoryStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]userModel.UserModel
	kelas     map[uuid.UUID]kelasModel.KelasModel
	jadwal    map[uuid.UUID]jadwalModel.JadwalModel
	sesi      map[uuid.UUID]m.SesiPresensiModel
	absensi   map[uuid.UUID]m.AbsensiModel
	pengajuan map[uuid.UUID]m.PengajuanAbsensiModel
}

var _ svc.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     map[uuid.UUID]userModel.UserModel{},
		kelas:     map[uuid.UUID]kelasModel.KelasModel{},
		jadwal:    map[uuid.UUID]jadwalModel.JadwalModel{},
		sesi:      map[uuid.UUID]m.SesiPresensiModel{},
		absensi:   map[uuid.UUID]m.AbsensiModel{},
		pengajuan: map[uuid.UUID]m.PengajuanAbsensiModel{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ===== seeding =====

func (s *MemoryStore) PutUser(u userModel.UserModel) userModel.UserModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&u.ID)
	s.users[u.ID] = u
	return u
}

func (s *MemoryStore) PutKelas(k kelasModel.KelasModel) kelasModel.KelasModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&k.ID)
	s.kelas[k.ID] = k
	return k
}

func (s *MemoryStore) PutJadwal(j jadwalModel.JadwalModel) jadwalModel.JadwalModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&j.ID)
	s.jadwal[j.ID] = j
	return j
}

// PutSession menyimpan sesi apa adanya (mis. sesi kedaluwarsa untuk test)
func (s *MemoryStore) PutSession(x m.SesiPresensiModel) m.SesiPresensiModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&x.ID)
	s.sesi[x.ID] = x
	return x
}

// AllAbsensi: snapshot untuk assertion
func (s *MemoryStore) AllAbsensi() []m.AbsensiModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]m.AbsensiModel, 0, len(s.absensi))
	for _, a := range s.absensi {
		out = append(out, a)
	}
	return out
}

func (s *MemoryStore) Tx(_ context.Context, fn func(svc.Store) error) error {
	return fn(s)
}

// ===== referensi =====

func (s *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, svc.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetKelas(_ context.Context, id uuid.UUID) (*kelasModel.KelasModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.kelas[id]
	if !ok {
		return nil, svc.ErrNotFound
	}
	return &k, nil
}

func (s *MemoryStore) GetJadwal(_ context.Context, id uuid.UUID) (*jadwalModel.JadwalModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jadwal[id]
	if !ok {
		return nil, svc.ErrNotFound
	}
	return &j, nil
}

func (s *MemoryStore) ListSiswaByKelas(_ context.Context, kelasID uuid.UUID) ([]userModel.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []userModel.UserModel
	for _, u := range s.users {
		if u.Role == constants.RoleSiswa && u.IsActive && u.KelasID != nil && *u.KelasID == kelasID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nama < out[j].Nama })
	return out, nil
}

func (s *MemoryStore) ListKelasByWali(_ context.Context, guruID uuid.UUID) ([]kelasModel.KelasModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []kelasModel.KelasModel
	for _, k := range s.kelas {
		if k.IsWali(guruID) {
			out = append(out, k)
		}
	}
	return out, nil
}

// ===== sesi =====

func (s *MemoryStore) CreateSession(_ context.Context, x *m.SesiPresensiModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.sesi {
		if e.Kode == x.Kode {
			return svc.ErrDuplicate
		}
	}
	ensureID(&x.ID)
	if x.CreatedAt.IsZero() {
		x.CreatedAt = time.Now()
	}
	s.sesi[x.ID] = *x
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id uuid.UUID) (*m.SesiPresensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, ok := s.sesi[id]
	if !ok {
		return nil, svc.ErrNotFound
	}
	return &x, nil
}

func (s *MemoryStore) FindActiveSessionByKode(_ context.Context, kode string, now time.Time) (*m.SesiPresensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.sesi {
		if x.Kode == kode && x.ActiveAt(now) {
			return &x, nil
		}
	}
	return nil, svc.ErrNotFound
}

func (s *MemoryStore) FindActiveSessionForJadwal(_ context.Context, jadwalID uuid.UUID, tanggal string, now time.Time) (*m.SesiPresensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *m.SesiPresensiModel
	for _, x := range s.sesi {
		if x.JadwalID == jadwalID && x.Tanggal == tanggal && x.ActiveAt(now) {
			if best == nil || x.CreatedAt.After(best.CreatedAt) {
				cp := x
				best = &cp
			}
		}
	}
	if best == nil {
		return nil, svc.ErrNotFound
	}
	return best, nil
}

func (s *MemoryStore) DeactivateSession(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, ok := s.sesi[id]
	if !ok {
		return svc.ErrNotFound
	}
	x.IsActive = false
	s.sesi[id] = x
	return nil
}

func (s *MemoryStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, x := range s.sesi {
		if !x.ExpiredAt.After(now) {
			delete(s.sesi, id)
			n++
		}
	}
	return n, nil
}

// ===== absensi =====

func (s *MemoryStore) FindAbsensi(_ context.Context, siswaID, jadwalID uuid.UUID, tanggal string) (*m.AbsensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.absensi {
		if a.SiswaID == siswaID && a.JadwalID == jadwalID && a.Tanggal == tanggal {
			return &a, nil
		}
	}
	return nil, svc.ErrNotFound
}

func (s *MemoryStore) CreateAbsensi(_ context.Context, a *m.AbsensiModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.absensi {
		if e.SiswaID == a.SiswaID && e.JadwalID == a.JadwalID && e.Tanggal == a.Tanggal {
			return svc.ErrDuplicate
		}
	}
	ensureID(&a.ID)
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	s.absensi[a.ID] = *a
	return nil
}

func (s *MemoryStore) SetKeteranganForDate(_ context.Context, siswaID uuid.UUID, tanggal string, k m.Keterangan) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, a := range s.absensi {
		if a.SiswaID == siswaID && a.Tanggal == tanggal {
			a.Keterangan = k
			a.UpdatedAt = time.Now()
			s.absensi[id] = a
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListAbsensiByJadwalTanggal(_ context.Context, jadwalID uuid.UUID, tanggal string) ([]m.AbsensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []m.AbsensiModel
	for _, a := range s.absensi {
		if a.JadwalID == jadwalID && a.Tanggal == tanggal {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListAbsensiBySiswa(_ context.Context, siswaID uuid.UUID, offset, limit int) ([]m.AbsensiModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []m.AbsensiModel
	for _, a := range s.absensi {
		if a.SiswaID == siswaID {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Tanggal != all[j].Tanggal {
			return all[i].Tanggal > all[j].Tanggal
		}
		return all[i].Waktu.After(all[j].Waktu)
	})
	return page(all, offset, limit), int64(len(all)), nil
}

// ===== pengajuan =====

func (s *MemoryStore) CreatePengajuan(_ context.Context, p *m.PengajuanAbsensiModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	s.pengajuan[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetPengajuan(_ context.Context, id uuid.UUID) (*m.PengajuanAbsensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pengajuan[id]
	if !ok {
		return nil, svc.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) FindOpenPengajuan(_ context.Context, siswaID uuid.UUID, tanggal string) (*m.PengajuanAbsensiModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pengajuan {
		if p.SiswaID == siswaID && p.Tanggal == tanggal &&
			(p.Status == m.StatusPending || p.Status == m.StatusDisetujui) {
			return &p, nil
		}
	}
	return nil, svc.ErrNotFound
}

func (s *MemoryStore) HasApprovedLeave(_ context.Context, siswaID uuid.UUID, tanggal string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pengajuan {
		if p.SiswaID == siswaID && p.Tanggal == tanggal && p.Status == m.StatusDisetujui {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) MarkReviewed(_ context.Context, p *m.PengajuanAbsensiModel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.pengajuan[p.ID]
	if !ok || cur.Status != m.StatusPending {
		return false, nil
	}
	cur.Status = p.Status
	cur.ReviewerID = p.ReviewerID
	cur.CatatanReviewer = p.CatatanReviewer
	cur.ReviewedAt = p.ReviewedAt
	cur.UpdatedAt = time.Now()
	s.pengajuan[p.ID] = cur
	return true, nil
}

func (s *MemoryStore) ListPengajuan(_ context.Context, f svc.PengajuanFilter) ([]m.PengajuanAbsensiModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kelasSet map[uuid.UUID]bool
	if f.KelasIDs != nil {
		kelasSet = make(map[uuid.UUID]bool, len(f.KelasIDs))
		for _, id := range f.KelasIDs {
			kelasSet[id] = true
		}
	}
	var all []m.PengajuanAbsensiModel
	for _, p := range s.pengajuan {
		if f.SiswaID != nil && p.SiswaID != *f.SiswaID {
			continue
		}
		if kelasSet != nil {
			u, ok := s.users[p.SiswaID]
			if !ok || u.KelasID == nil || !kelasSet[*u.KelasID] {
				continue
			}
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.Tanggal != "" && p.Tanggal != f.Tanggal {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, f.Offset, f.Limit), int64(len(all)), nil
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
