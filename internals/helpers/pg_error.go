package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgCode ambil SQLSTATE dari pgx (driver gorm) atau lib/pq.
func pgCode(err error) (code, constraint string, ok bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

// IsUniqueViolation: true kalau err adalah 23505 (opsional: constraint tertentu).
func IsUniqueViolation(err error, constraint ...string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	code, cons, ok := pgCode(err)
	if !ok || code != pgUniqueViolation {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if c == cons {
			return true
		}
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == pgForeignKeyViolation
}
