package store_test

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/store"
	"github.com/maxretail/training-api/internal/testutil"
)

func TestCreateAndFetch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := store.NewRepository()
	s := &store.Store{
		Name:          "Uptown",
		Location:      "5th Avenue",
		StoreSize:     store.SizeLarge,
		TargetMetrics: datatypes.JSON([]byte(`{"conversionRate":14}`)),
		IsActive:      true,
	}
	if err := repo.Create(tx, s); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Uptown" || got.StoreSize != store.SizeLarge {
		t.Fatalf("got %+v", got)
	}
}

func TestListActiveFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := store.NewRepository()
	open := testutil.SeedStore(t, tx, "Open Store")
	closed := testutil.SeedStore(t, tx, "Closed Store")
	if err := tx.Model(closed).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := repo.ListActive(tx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range active {
		if s.ID == closed.ID {
			t.Fatal("inactive store returned by ListActive")
		}
	}
	found := false
	for _, s := range active {
		if s.ID == open.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("active store missing from ListActive")
	}
}

func TestInvalidSizeRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	err := store.NewRepository().Create(tx, &store.Store{
		Name:      "Odd Size",
		Location:  "nowhere",
		StoreSize: "gigantic",
	})
	if !errors.Is(err, dberr.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}
