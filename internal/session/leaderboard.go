package session

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardEntry is one user's aggregate training performance.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Sessions int       `json:"sessions"`
	AvgScore float64   `json:"avgScore"`
}

// Leaderboard ranks users by mean score across their completed sessions.
// Sessions without numeric scores are ignored.
func Leaderboard(db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	sessions, err := NewRepository().ListCompleted(db)
	if err != nil {
		return nil, err
	}

	type agg struct {
		email string
		sum   float64
		n     int
	}
	byUser := map[uuid.UUID]*agg{}
	for _, s := range sessions {
		avg, ok := AverageScore(s.Scores)
		if !ok {
			continue
		}
		a := byUser[s.UserID]
		if a == nil {
			a = &agg{}
			if s.User != nil {
				a.email = s.User.Email
			}
			byUser[s.UserID] = a
		}
		a.sum += avg
		a.n++
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for id, a := range byUser {
		entries = append(entries, LeaderboardEntry{
			UserID:   id,
			Email:    a.email,
			Sessions: a.n,
			AvgScore: a.sum / float64(a.n),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgScore != entries[j].AvgScore {
			return entries[i].AvgScore > entries[j].AvgScore
		}
		return entries[i].Email < entries[j].Email
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
