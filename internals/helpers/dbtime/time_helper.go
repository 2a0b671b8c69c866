// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"
)

// DateLayout: format tanggal kalender yang disimpan sebagai string (kunci harian).
const DateLayout = "2006-01-02"

// Clock bisa diganti di test.
type Clock func() time.Time

// DateString: tanggal kalender t di zona sekolah, "YYYY-MM-DD".
func DateString(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// NormalizeDate: parse + format ulang (mis. "2024-1-02" ditolak, spasi dibuang).
func NormalizeDate(s string) (string, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// WeekdayIn: hari (0=Minggu..6=Sabtu) dari t di zona sekolah.
func WeekdayIn(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return int(t.In(loc).Weekday())
}
