// Package testutil provides the shared database harness for repository
// integration tests. Tests run inside a transaction that is rolled back, so
// the schema is migrated once and never accumulates state.
package testutil

import (
	"errors"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/maxretail/training-api/internal/audit"
	"github.com/maxretail/training-api/internal/interaction"
	"github.com/maxretail/training-api/internal/kpi"
	"github.com/maxretail/training-api/internal/persona"
	"github.com/maxretail/training-api/internal/scenario"
	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/store"
	"github.com/maxretail/training-api/internal/transcript"
	"github.com/maxretail/training-api/internal/user"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
)

// DB opens (once) the test database named by TEST_POSTGRES_DSN, migrates the
// schema and installs the audit callback. Tests are skipped when the DSN is
// unset.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := audit.Register(db); err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repository integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

// Tx begins a transaction rolled back when the test finishes.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&store.Store{},
		&user.User{},
		&persona.Persona{},
		&scenario.TrainingScenario{},
		&session.TrainingSession{},
		&interaction.TrainingInteraction{},
		&transcript.TrainingTranscript{},
		&kpi.KpiData{},
	)
}
