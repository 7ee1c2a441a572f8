package session_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/maxretail/training-api/internal/interaction"
	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/testutil"
	"github.com/maxretail/training-api/internal/transcript"
	"github.com/maxretail/training-api/internal/user"
)

func TestCompleteTransition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "complete@example.com", user.RoleStoreManager)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)

	repo := session.NewRepository()
	scores := datatypes.JSON([]byte(`{"accuracy":4,"communication":5}`))
	if err := repo.Complete(tx, s.ID, nil, scores, 420); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := repo.GetByID(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionStatus != session.StatusCompleted {
		t.Fatalf("status = %q", got.SessionStatus)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}
	if got.CompletionTime != 420 {
		t.Fatalf("completion_time = %d", got.CompletionTime)
	}

	// completed sessions are final
	if err := repo.Complete(tx, s.ID, nil, scores, 1); !errors.Is(err, session.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := repo.Abandon(tx, s.ID); !errors.Is(err, session.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAbandonTransition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "abandon@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)

	repo := session.NewRepository()
	if err := repo.Abandon(tx, s.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	got, err := repo.GetByID(tx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionStatus != session.StatusAbandoned {
		t.Fatalf("status = %q", got.SessionStatus)
	}
}

func TestDeleteCascadesChildrenButNotUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "cascade@example.com", user.RoleStoreManager)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)
	testutil.SeedInteraction(t, tx, s.ID, 1)
	testutil.SeedInteraction(t, tx, s.ID, 2)

	tr := &transcript.TrainingTranscript{
		SessionID:      s.ID,
		FullTranscript: datatypes.JSON([]byte(`{"turns":[]}`)),
	}
	if err := tx.Create(tr).Error; err != nil {
		t.Fatalf("create transcript: %v", err)
	}

	if err := session.NewRepository().Delete(tx, s.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	var interactions int64
	if err := tx.Model(&interaction.TrainingInteraction{}).
		Where("session_id = ?", s.ID).Count(&interactions).Error; err != nil {
		t.Fatalf("count interactions: %v", err)
	}
	if interactions != 0 {
		t.Fatalf("expected 0 orphaned interactions, found %d", interactions)
	}

	var transcripts int64
	if err := tx.Model(&transcript.TrainingTranscript{}).
		Where("session_id = ?", s.ID).Count(&transcripts).Error; err != nil {
		t.Fatalf("count transcripts: %v", err)
	}
	if transcripts != 0 {
		t.Fatalf("expected 0 orphaned transcripts, found %d", transcripts)
	}

	// the parent user must be unaffected
	var reloaded user.User
	if err := tx.First(&reloaded, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("user was affected by session delete: %v", err)
	}
}

func TestDeleteUserCascadesSessions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	u := testutil.SeedUser(t, tx, "goner@example.com", user.RoleTrainer)
	s := testutil.SeedSession(t, tx, u.ID, session.StatusActive)

	if err := user.NewRepository().Delete(tx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var count int64
	if err := tx.Model(&session.TrainingSession{}).
		Where("id = ?", s.ID).Count(&count).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected session to cascade with user, found %d", count)
	}
}

func TestLeaderboardRanksByAverageScore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	strong := testutil.SeedUser(t, tx, "strong@example.com", user.RoleStoreManager)
	weak := testutil.SeedUser(t, tx, "weak@example.com", user.RoleStoreManager)

	repo := session.NewRepository()
	for _, c := range []struct {
		userID uuid.UUID
		scores string
	}{
		{strong.ID, `{"accuracy":5,"application":5}`},
		{strong.ID, `{"accuracy":4,"application":4}`},
		{weak.ID, `{"accuracy":2,"application":2}`},
	} {
		s := testutil.SeedSession(t, tx, c.userID, session.StatusActive)
		if err := repo.Complete(tx, s.ID, nil, datatypes.JSON([]byte(c.scores)), 60); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	entries, err := session.Leaderboard(tx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != strong.ID {
		t.Fatalf("expected %s on top, got %s", strong.Email, entries[0].Email)
	}
	if entries[0].Sessions != 2 {
		t.Fatalf("expected 2 sessions for top entry, got %d", entries[0].Sessions)
	}
}
