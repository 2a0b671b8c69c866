package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	svc "sekolahku_backend/internals/features/school/attendance/service"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(gorm.ErrRecordNotFound), svc.ErrNotFound)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "23505"}), svc.ErrDuplicate)
	assert.ErrorIs(t, mapErr(fmt.Errorf("insert absensi: %w", &pgconn.PgError{Code: "23503"})), svc.ErrMissingRef)

	other := errors.New("koneksi putus")
	assert.Equal(t, other, mapErr(other))
}
