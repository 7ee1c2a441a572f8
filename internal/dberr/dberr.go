// Package dberr maps engine-level constraint failures into an explicit error
// taxonomy. Handlers use these sentinels to pick response codes instead of
// inspecting Postgres SQLSTATEs everywhere.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned for unique-constraint violations (23505).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolation is returned for referential-integrity failures (23503).
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrInvalidEnumValue is returned for check-constraint failures (23514);
	// in this schema every check constraint guards a closed value set.
	ErrInvalidEnumValue = errors.New("invalid enum value")
	// ErrNotNullViolation is returned for not-null failures (23502).
	ErrNotNullViolation = errors.New("not null violation")
	// ErrNotFound aliases gorm.ErrRecordNotFound so callers only import dberr.
	ErrNotFound = gorm.ErrRecordNotFound
)

// Map translates a raw database error into one of the taxonomy sentinels,
// wrapping the original so detail is never lost. Unrecognized errors pass
// through untouched.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return errors.Join(ErrDuplicateKey, err)
		case "23503":
			return errors.Join(ErrForeignKeyViolation, err)
		case "23514":
			return errors.Join(ErrInvalidEnumValue, err)
		case "23502":
			return errors.Join(ErrNotNullViolation, err)
		}
	}
	// gorm de-duplicates some driver errors itself
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicateKey, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.Join(ErrForeignKeyViolation, err)
	}
	return err
}
