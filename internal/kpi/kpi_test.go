package kpi_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/kpi"
	"github.com/maxretail/training-api/internal/testutil"
	"github.com/maxretail/training-api/internal/user"
)

func TestUniquePerUserStoreDate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	st := testutil.SeedStore(t, tx, "KPI Store")
	other := testutil.SeedStore(t, tx, "Other Store")
	u := testutil.SeedUser(t, tx, "kpi@example.com", user.RoleStoreManager)
	peer := testutil.SeedUser(t, tx, "peer@example.com", user.RoleStoreManager)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	testutil.SeedKpi(t, tx, u.ID, st.ID, day)

	repo := kpi.NewRepository()
	// nested transaction gives a savepoint, so the failed insert does not
	// abort the test transaction
	err := tx.Transaction(func(inner *gorm.DB) error {
		return repo.Create(inner, &kpi.KpiData{
			ID:      uuid.New(),
			UserID:  u.ID,
			StoreID: st.ID,
			Date:    datatypes.Date(day),
		})
	})
	if !errors.Is(err, dberr.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// varying any one of the three fields makes a new row legal
	variants := []*kpi.KpiData{
		{ID: uuid.New(), UserID: peer.ID, StoreID: st.ID, Date: datatypes.Date(day)},
		{ID: uuid.New(), UserID: u.ID, StoreID: other.ID, Date: datatypes.Date(day)},
		{ID: uuid.New(), UserID: u.ID, StoreID: st.ID, Date: datatypes.Date(day.AddDate(0, 0, 1))},
	}
	for i, v := range variants {
		if err := repo.Create(tx, v); err != nil {
			t.Fatalf("variant %d should insert cleanly: %v", i, err)
		}
	}
}

func TestDeleteUserWithKpiRestricted(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	st := testutil.SeedStore(t, tx, "Restrict Store")
	u := testutil.SeedUser(t, tx, "restricted@example.com", user.RoleTrainer)
	testutil.SeedKpi(t, tx, u.ID, st.ID, time.Now())

	err := user.NewRepository().Delete(tx, u.ID)
	if !errors.Is(err, dberr.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}

func TestListByStore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	st := testutil.SeedStore(t, tx, "Tracked Store")
	other := testutil.SeedStore(t, tx, "Untracked Store")
	u := testutil.SeedUser(t, tx, "storekpi@example.com", user.RoleStoreManager)
	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedKpi(t, tx, u.ID, st.ID, day)
	testutil.SeedKpi(t, tx, u.ID, st.ID, day.AddDate(0, 0, 1))
	testutil.SeedKpi(t, tx, u.ID, other.ID, day)

	got, err := kpi.NewRepository().ListByStore(tx, st.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for the store, got %d", len(got))
	}
	for _, r := range got {
		if r.StoreID != st.ID {
			t.Fatalf("record from wrong store: %s", r.StoreID)
		}
	}
}

func TestListByUserInRange(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	st := testutil.SeedStore(t, tx, "Range Store")
	u := testutil.SeedUser(t, tx, "range@example.com", user.RoleStoreManager)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		testutil.SeedKpi(t, tx, u.ID, st.ID, base.AddDate(0, 0, i*7))
	}

	got, err := kpi.NewRepository().ListByUserInRange(tx, u.ID, base.AddDate(0, 0, 7), base.AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records in range, got %d", len(got))
	}
}
