package model

// Keterangan = status kehadiran harian
type Keterangan string

const (
	KeteranganHadir Keterangan = "hadir"
	KeteranganIzin  Keterangan = "izin"
	KeteranganSakit Keterangan = "sakit"
	KeteranganAlpa  Keterangan = "alpa"
)

func (k Keterangan) Valid() bool {
	switch k {
	case KeteranganHadir, KeteranganIzin, KeteranganSakit, KeteranganAlpa:
		return true
	}
	return false
}

// IsLeave: izin/sakit mengunci hari itu dari check-in
func (k Keterangan) IsLeave() bool {
	return k == KeteranganIzin || k == KeteranganSakit
}

type Metode string

const (
	MetodeOtomatis Metode = "otomatis"
	MetodeManual   Metode = "manual"
)

// StatusPengajuan = status review pengajuan izin/sakit
type StatusPengajuan string

const (
	StatusPending   StatusPengajuan = "pending"
	StatusDisetujui StatusPengajuan = "disetujui"
	StatusDitolak   StatusPengajuan = "ditolak"
)

// IsDecision: hanya dua nilai ini yang boleh dikirim reviewer
func (s StatusPengajuan) IsDecision() bool {
	return s == StatusDisetujui || s == StatusDitolak
}
