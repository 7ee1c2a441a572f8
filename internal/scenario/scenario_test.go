package scenario_test

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/scenario"
	"github.com/maxretail/training-api/internal/testutil"
)

func TestDifficultyNormalizedOnSave(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	p := testutil.SeedPersona(t, tx, "Case Persona")
	s := &scenario.TrainingScenario{
		PersonaID:       p.ID,
		Title:           "mixed case difficulty",
		DifficultyLevel: "MeDiUm",
		ScenarioData:    datatypes.JSON([]byte("{}")),
		IsActive:        true,
	}
	if err := scenario.NewRepository().Create(tx, s); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := scenario.NewRepository().GetByID(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DifficultyLevel != scenario.DifficultyMedium {
		t.Fatalf("difficulty = %q, want %q", got.DifficultyLevel, scenario.DifficultyMedium)
	}
}

func TestInvalidDifficultyRejectedByConstraint(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	p := testutil.SeedPersona(t, tx, "Constraint Persona")

	// bypass the normalizing hooks to hit the check constraint directly
	err := tx.Exec(`INSERT INTO training_scenarios
		(id, persona_id, title, difficulty_level, scenario_data, is_active, created_at)
		VALUES (gen_random_uuid(), ?, 'bad', 'impossible', '{}', true, now())`, p.ID).Error
	if !errors.Is(dberr.Map(err), dberr.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}

func TestMissingScenarioDataRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	p := testutil.SeedPersona(t, tx, "NotNull Persona")
	err := tx.Exec(`INSERT INTO training_scenarios
		(id, persona_id, title, difficulty_level, scenario_data, is_active, created_at)
		VALUES (gen_random_uuid(), ?, 'no data', 'easy', NULL, true, now())`, p.ID).Error
	if !errors.Is(dberr.Map(err), dberr.ErrNotNullViolation) {
		t.Fatalf("expected ErrNotNullViolation, got %v", err)
	}
}

func TestListByDifficultySpansPersonas(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := scenario.NewRepository()
	first := testutil.SeedPersona(t, tx, "Cross Persona A")
	second := testutil.SeedPersona(t, tx, "Cross Persona B")
	testutil.SeedScenario(t, tx, first.ID, scenario.DifficultyEasy)
	testutil.SeedScenario(t, tx, first.ID, scenario.DifficultyEasy)
	testutil.SeedScenario(t, tx, second.ID, scenario.DifficultyEasy)
	testutil.SeedScenario(t, tx, second.ID, scenario.DifficultyHard)

	easy, err := repo.ListByDifficulty(tx, "EASY")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(easy) != 3 {
		t.Fatalf("expected 3 easy scenarios across personas, got %d", len(easy))
	}
	seen := map[string]bool{}
	for _, s := range easy {
		if s.DifficultyLevel != scenario.DifficultyEasy {
			t.Fatalf("difficulty = %q", s.DifficultyLevel)
		}
		seen[s.PersonaID.String()] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected scenarios from both personas, got %d", len(seen))
	}
}

func TestListByPersonaAndDifficultyFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := scenario.NewRepository()
	p := testutil.SeedPersona(t, tx, "Filter Persona")
	testutil.SeedScenario(t, tx, p.ID, scenario.DifficultyEasy)
	testutil.SeedScenario(t, tx, p.ID, scenario.DifficultyEasy)
	testutil.SeedScenario(t, tx, p.ID, scenario.DifficultyHard)

	easy, err := repo.ListByPersonaAndDifficulty(tx, p.ID, "Easy")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(easy) != 2 {
		t.Fatalf("expected 2 easy scenarios, got %d", len(easy))
	}

	random, err := repo.Random(tx, p.ID, scenario.DifficultyHard)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if random.DifficultyLevel != scenario.DifficultyHard {
		t.Fatalf("random difficulty = %q", random.DifficultyLevel)
	}
}
