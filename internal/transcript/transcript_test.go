package transcript_test

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/testutil"
	"github.com/maxretail/training-api/internal/transcript"
	"github.com/maxretail/training-api/internal/user"
)

func TestUpsertReplacesEarlierTranscript(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "transcript@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusCompleted)

	repo := transcript.NewRepository()
	first := &transcript.TrainingTranscript{
		SessionID:      s.ID,
		FullTranscript: datatypes.JSON([]byte(`{"turns":[{"text":"first draft"}]}`)),
		Summary:        "draft",
	}
	if err := repo.Upsert(tx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &transcript.TrainingTranscript{
		SessionID:      s.ID,
		FullTranscript: datatypes.JSON([]byte(`{"turns":[{"text":"final version of the call"}]}`)),
		Summary:        "final",
	}
	if err := repo.Upsert(tx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetBySession(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Summary != "final" {
		t.Fatalf("summary = %q, want final", got.Summary)
	}

	var count int64
	if err := tx.Model(&transcript.TrainingTranscript{}).
		Where("session_id = ?", s.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single transcript per session, found %d", count)
	}
}

func TestWordCountComputedOnSave(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "wordcount@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusCompleted)

	tr := &transcript.TrainingTranscript{
		SessionID:      s.ID,
		FullTranscript: datatypes.JSON([]byte(`{"turns":[{"text":"just four short words"}]}`)),
	}
	if err := transcript.NewRepository().Upsert(tx, tr); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := transcript.NewRepository().GetBySession(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.WordCount != 4 {
		t.Fatalf("word_count = %d, want 4", got.WordCount)
	}
}
