package interaction_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/interaction"
	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/testutil"
	"github.com/maxretail/training-api/internal/user"
)

func TestNextOrderStartsAtOneAndIncrements(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "order@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)

	repo := interaction.NewRepository()
	next, err := repo.NextOrder(tx, s.ID)
	if err != nil {
		t.Fatalf("next order: %v", err)
	}
	if next != 1 {
		t.Fatalf("empty session should start at 1, got %d", next)
	}

	testutil.SeedInteraction(t, tx, s.ID, 1)
	testutil.SeedInteraction(t, tx, s.ID, 2)

	next, err = repo.NextOrder(tx, s.ID)
	if err != nil {
		t.Fatalf("next order: %v", err)
	}
	if next != 3 {
		t.Fatalf("got %d, want 3", next)
	}
}

func TestListBySessionOrdered(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "listorder@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)

	// inserted out of order on purpose
	testutil.SeedInteraction(t, tx, s.ID, 3)
	testutil.SeedInteraction(t, tx, s.ID, 1)
	testutil.SeedInteraction(t, tx, s.ID, 2)

	got, err := interaction.NewRepository().ListBySession(tx, s.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 interactions, got %d", len(got))
	}
	for i, in := range got {
		if in.InteractionOrder != i+1 {
			t.Fatalf("position %d has order %d", i, in.InteractionOrder)
		}
	}
}

func TestScenarioDeleteDetachesInteraction(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "detach@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)
	p := testutil.SeedPersona(t, tx, "Detach Persona")
	sc := testutil.SeedScenario(t, tx, p.ID, "easy")

	in := testutil.SeedInteraction(t, tx, s.ID, 1)
	if err := tx.Model(in).Update("scenario_id", sc.ID).Error; err != nil {
		t.Fatalf("attach scenario: %v", err)
	}

	if err := tx.Delete(sc).Error; err != nil {
		t.Fatalf("delete scenario: %v", err)
	}

	got, err := interaction.NewRepository().GetByID(tx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ScenarioID != nil {
		t.Fatalf("scenario_id should be null after scenario delete, got %v", got.ScenarioID)
	}
}

func TestOrphanInteractionRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	err := interaction.NewRepository().Create(tx, &interaction.TrainingInteraction{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		Question:  "who owns this?",
	})
	if !errors.Is(err, dberr.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}
