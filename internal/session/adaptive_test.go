package session

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/maxretail/training-api/internal/scenario"
)

func scored(avg float64, age time.Duration) TrainingSession {
	payload := fmt.Sprintf(`{"accuracy":%g,"application":%g}`, avg, avg)
	return TrainingSession{
		SessionStatus: StatusCompleted,
		Scores:        datatypes.JSON([]byte(payload)),
		StartedAt:     time.Now().Add(-age),
	}
}

func TestAverageScore(t *testing.T) {
	avg, ok := AverageScore([]byte(`{"accuracy":4,"communication":2}`))
	if !ok || avg != 3 {
		t.Fatalf("got (%v, %v), want (3, true)", avg, ok)
	}
	if _, ok := AverageScore(nil); ok {
		t.Fatal("empty payload should not average")
	}
	if _, ok := AverageScore([]byte(`{"note":"text only"}`)); ok {
		t.Fatal("non-numeric payload should not average")
	}
}

func TestNextDifficultyPromotes(t *testing.T) {
	recent := []TrainingSession{
		scored(4.6, time.Hour),
		scored(4.8, 2*time.Hour),
		scored(4.5, 3*time.Hour),
	}
	if got := NextDifficulty(scenario.DifficultyMedium, recent); got != scenario.DifficultyHard {
		t.Fatalf("got %q, want hard", got)
	}
}

func TestNextDifficultyDemotes(t *testing.T) {
	recent := []TrainingSession{
		scored(2.1, time.Hour),
		scored(2.9, 2*time.Hour),
	}
	if got := NextDifficulty(scenario.DifficultyHard, recent); got != scenario.DifficultyMedium {
		t.Fatalf("got %q, want medium", got)
	}
}

func TestNextDifficultyHoldsInBand(t *testing.T) {
	recent := []TrainingSession{scored(3.8, time.Hour)}
	if got := NextDifficulty(scenario.DifficultyMedium, recent); got != scenario.DifficultyMedium {
		t.Fatalf("got %q, want medium", got)
	}
}

func TestNextDifficultyWindowIsNewestFirst(t *testing.T) {
	// five strong recent sessions push an older weak streak out of the window
	recent := []TrainingSession{
		scored(1.0, 10*time.Hour),
		scored(1.0, 11*time.Hour),
	}
	for i := 1; i <= 5; i++ {
		recent = append(recent, scored(4.9, time.Duration(i)*time.Minute))
	}
	if got := NextDifficulty(scenario.DifficultyEasy, recent); got != scenario.DifficultyMedium {
		t.Fatalf("got %q, want medium", got)
	}
}

func TestNextDifficultyClampsAtLadderEnds(t *testing.T) {
	strong := []TrainingSession{scored(5.0, time.Hour)}
	if got := NextDifficulty(scenario.DifficultyExpert, strong); got != scenario.DifficultyExpert {
		t.Fatalf("got %q, want expert", got)
	}
	weak := []TrainingSession{scored(1.0, time.Hour)}
	if got := NextDifficulty(scenario.DifficultyEasy, weak); got != scenario.DifficultyEasy {
		t.Fatalf("got %q, want easy", got)
	}
}

func TestNextDifficultyNoHistory(t *testing.T) {
	if got := NextDifficulty("HARD", nil); got != scenario.DifficultyHard {
		t.Fatalf("got %q, want hard", got)
	}
	if got := NextDifficulty("bogus", nil); got != scenario.DifficultyEasy {
		t.Fatalf("got %q, want easy fallback", got)
	}
}
