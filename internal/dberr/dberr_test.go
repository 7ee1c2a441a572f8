package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapSQLStates(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"23505", ErrDuplicateKey},
		{"23503", ErrForeignKeyViolation},
		{"23514", ErrInvalidEnumValue},
		{"23502", ErrNotNullViolation},
	}
	for _, c := range cases {
		raw := fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.code, Message: "constraint failed"})
		got := Map(raw)
		if !errors.Is(got, c.want) {
			t.Fatalf("code %s: got %v, want %v", c.code, got, c.want)
		}
		// original driver detail stays reachable
		var pgErr *pgconn.PgError
		if !errors.As(got, &pgErr) {
			t.Fatalf("code %s: driver error lost", c.code)
		}
	}
}

func TestMapPassesThroughUnknown(t *testing.T) {
	raw := errors.New("connection refused")
	if got := Map(raw); got != raw {
		t.Fatalf("unknown error mutated: %v", got)
	}
	unknownState := &pgconn.PgError{Code: "40001"}
	if got := Map(unknownState); got != error(unknownState) {
		t.Fatalf("unhandled SQLSTATE mutated: %v", got)
	}
}

func TestMapGormSentinels(t *testing.T) {
	if got := Map(gorm.ErrDuplicatedKey); !errors.Is(got, ErrDuplicateKey) {
		t.Fatalf("got %v", got)
	}
	if got := Map(gorm.ErrForeignKeyViolated); !errors.Is(got, ErrForeignKeyViolation) {
		t.Fatalf("got %v", got)
	}
}

func TestMapNotFoundUntouched(t *testing.T) {
	if got := Map(gorm.ErrRecordNotFound); !errors.Is(got, ErrNotFound) {
		t.Fatalf("got %v", got)
	}
}

func TestMapNil(t *testing.T) {
	if Map(nil) != nil {
		t.Fatal("nil should map to nil")
	}
}
