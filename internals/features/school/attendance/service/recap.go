package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/attendance/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
)

type RecapRow struct {
	SiswaID    uuid.UUID    `json:"siswaId"`
	Nama       string       `json:"nama"`
	Keterangan m.Keterangan `json:"keterangan"`
	Metode     *m.Metode    `json:"metode,omitempty"`
	Waktu      *time.Time   `json:"waktu,omitempty"`
	Tercatat   bool         `json:"tercatat"` // false = alpa implisit
}

type Recap struct {
	JadwalID uuid.UUID            `json:"jadwalId"`
	Tanggal  string               `json:"tanggal"`
	Rows     []RecapRow           `json:"rows"`
	Summary  map[m.Keterangan]int `json:"summary"`
}

// Recap: status tiap siswa kelas untuk (jadwal, tanggal); tanpa catatan = alpa.
// Tanggal kosong = hari ini.
func (s *Service) Recap(ctx context.Context, actor helperAuth.Actor, jadwalID uuid.UUID, tanggal string) (*Recap, error) {
	if tanggal == "" {
		tanggal = s.today(s.now())
	}
	tanggal, ok := dbtime.NormalizeDate(tanggal)
	if !ok {
		return nil, helper.NewValidation("INVALID_TANGGAL", "tanggal harus berformat YYYY-MM-DD")
	}

	jadwal, err := s.store.GetJadwal(ctx, jadwalID)
	if err != nil {
		return nil, loadErr(err, errJadwalNotFound())
	}
	if !teachesJadwal(actor, jadwal, true) {
		return nil, helper.NewForbidden("NOT_JADWAL_TEACHER", "Anda bukan pengajar jadwal ini")
	}

	siswa, err := s.store.ListSiswaByKelas(ctx, jadwal.KelasID)
	if err != nil {
		return nil, helper.NewServer("gagal memuat siswa", err)
	}
	records, err := s.store.ListAbsensiByJadwalTanggal(ctx, jadwal.ID, tanggal)
	if err != nil {
		return nil, helper.NewServer("gagal memuat absensi", err)
	}
	bySiswa := make(map[uuid.UUID]m.AbsensiModel, len(records))
	for _, r := range records {
		bySiswa[r.SiswaID] = r
	}

	out := &Recap{
		JadwalID: jadwal.ID,
		Tanggal:  tanggal,
		Rows:     make([]RecapRow, 0, len(siswa)),
		Summary: map[m.Keterangan]int{
			m.KeteranganHadir: 0, m.KeteranganIzin: 0, m.KeteranganSakit: 0, m.KeteranganAlpa: 0,
		},
	}
	for _, u := range siswa {
		row := RecapRow{SiswaID: u.ID, Nama: u.Nama, Keterangan: m.KeteranganAlpa}
		if r, ok := bySiswa[u.ID]; ok {
			metode, waktu := r.Metode, r.Waktu
			row.Keterangan = r.Keterangan
			row.Metode = &metode
			row.Waktu = &waktu
			row.Tercatat = true
		}
		out.Summary[row.Keterangan]++
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// History: riwayat absensi milik siswa sendiri (terbaru dulu)
func (s *Service) History(ctx context.Context, siswaID uuid.UUID, p helper.Params) ([]m.AbsensiModel, int64, error) {
	rows, total, err := s.store.ListAbsensiBySiswa(ctx, siswaID, p.Offset(), p.Limit())
	if err != nil {
		return nil, 0, helper.NewServer("gagal memuat riwayat", err)
	}
	return rows, total, nil
}
