package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateStringUsesSchoolTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:30 UTC = 03:30 WIB keesokan harinya
	ts := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-11", DateString(ts, jakarta))
	assert.Equal(t, "2024-03-10", DateString(ts, time.UTC))
	assert.Equal(t, 1, WeekdayIn(ts, jakarta)) // Senin
}

func TestNormalizeDate(t *testing.T) {
	got, ok := NormalizeDate(" 2024-05-01 ")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", got)

	_, ok = NormalizeDate("01-05-2024")
	assert.False(t, ok)
}

func TestTodParseAndOn(t *testing.T) {
	tod, err := Parse("07:30")
	require.NoError(t, err)
	assert.Equal(t, "07:30", tod.String())

	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "07:30:00", v)

	jakarta, _ := time.LoadLocation("Asia/Jakarta")
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, jakarta)
	at := tod.On(day, jakarta)
	assert.Equal(t, time.Date(2024, 3, 11, 7, 30, 0, 0, jakarta), at)

	var scanned Tod
	require.NoError(t, scanned.Scan("13:05:00"))
	assert.Equal(t, "13:05", scanned.String())

	_, err = Parse("25:00")
	assert.Error(t, err)
}
