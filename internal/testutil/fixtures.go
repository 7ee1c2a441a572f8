package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/interaction"
	"github.com/maxretail/training-api/internal/kpi"
	"github.com/maxretail/training-api/internal/persona"
	"github.com/maxretail/training-api/internal/scenario"
	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/store"
	"github.com/maxretail/training-api/internal/user"
)

func SeedStore(tb testing.TB, tx *gorm.DB, name string) *store.Store {
	tb.Helper()
	s := &store.Store{
		ID:        uuid.New(),
		Name:      name,
		Location:  "Market Street",
		StoreSize: store.SizeMedium,
		IsActive:  true,
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed store: %v", err)
	}
	return s
}

func SeedUser(tb testing.TB, tx *gorm.DB, email, role string) *user.User {
	tb.Helper()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPersona(tb testing.TB, tx *gorm.DB, name string) *persona.Persona {
	tb.Helper()
	p := &persona.Persona{
		ID:                uuid.New(),
		Name:              name,
		Description:       "seeded persona",
		Profile:           datatypes.JSON([]byte(`{"age":30}`)),
		Scenarios:         datatypes.JSON([]byte("[]")),
		DifficultyMapping: datatypes.JSON([]byte("{}")),
		IsActive:          true,
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed persona: %v", err)
	}
	return p
}

func SeedScenario(tb testing.TB, tx *gorm.DB, personaID uuid.UUID, difficulty string) *scenario.TrainingScenario {
	tb.Helper()
	s := &scenario.TrainingScenario{
		ID:              uuid.New(),
		PersonaID:       personaID,
		Title:           "seeded scenario " + uuid.NewString()[:8],
		Description:     "seeded",
		DifficultyLevel: difficulty,
		KpiFocus:        "conversion",
		ScenarioData:    datatypes.JSON([]byte(`{"customerDialogue":"hello"}`)),
		IsActive:        true,
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed scenario: %v", err)
	}
	return s
}

func SeedSession(tb testing.TB, tx *gorm.DB, userID uuid.UUID, status string) *session.TrainingSession {
	tb.Helper()
	s := &session.TrainingSession{
		ID:              uuid.New(),
		UserID:          userID,
		PersonaType:     "Bargain Hunter",
		DifficultyLevel: scenario.DifficultyEasy,
		ScenarioData:    datatypes.JSON([]byte("{}")),
		SessionStatus:   status,
		StartedAt:       time.Now(),
	}
	if status != session.StatusActive {
		now := time.Now()
		s.CompletedAt = &now
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedInteraction(tb testing.TB, tx *gorm.DB, sessionID uuid.UUID, order int) *interaction.TrainingInteraction {
	tb.Helper()
	i := &interaction.TrainingInteraction{
		ID:               uuid.New(),
		SessionID:        sessionID,
		Question:         "How do you respond?",
		UserResponse:     "Politely.",
		InteractionOrder: order,
	}
	if err := tx.Create(i).Error; err != nil {
		tb.Fatalf("seed interaction: %v", err)
	}
	return i
}

func SeedKpi(tb testing.TB, tx *gorm.DB, userID, storeID uuid.UUID, day time.Time) *kpi.KpiData {
	tb.Helper()
	k := &kpi.KpiData{
		ID:             uuid.New(),
		UserID:         userID,
		StoreID:        storeID,
		Date:           datatypes.Date(day),
		ConversionRate: 12.5,
		AvgBillValue:   1800,
		Footfall:       240,
		SalesTarget:    50000,
		ActualSales:    43000,
		ReturnRate:     4.2,
	}
	if err := tx.Create(k).Error; err != nil {
		tb.Fatalf("seed kpi: %v", err)
	}
	return k
}
