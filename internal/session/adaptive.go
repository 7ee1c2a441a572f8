package session

import (
	"encoding/json"
	"sort"

	"github.com/maxretail/training-api/internal/scenario"
)

// Adaptive difficulty thresholds: sustained strong scores move the trainee up
// one level, sustained weak scores move them down one.
const (
	adaptiveWindow   = 5
	promoteThreshold = 4.5
	demoteThreshold  = 3.0
)

// AverageScore flattens a session's score payload (a JSON object of numeric
// dimensions, e.g. accuracy/application/communication/adaptability) into a
// single mean. Returns false when there is nothing numeric to average.
func AverageScore(scores []byte) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(scores, &raw); err != nil {
		return 0, false
	}
	var sum float64
	var n int
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// NextDifficulty decides the next difficulty from the trainee's recent
// completed sessions. Sessions are considered newest-first; only the adaptive
// window counts.
func NextDifficulty(current string, recent []TrainingSession) string {
	current = scenario.NormalizeDifficulty(current)
	if !scenario.ValidDifficulty(current) {
		return scenario.DifficultyEasy
	}

	// newest first
	sorted := make([]TrainingSession, len(recent))
	copy(sorted, recent)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := sorted[i].StartedAt, sorted[j].StartedAt
		return ti.After(tj)
	})
	if len(sorted) > adaptiveWindow {
		sorted = sorted[:adaptiveWindow]
	}

	var sum float64
	var n int
	for _, s := range sorted {
		if avg, ok := AverageScore(s.Scores); ok {
			sum += avg
			n++
		}
	}
	if n == 0 {
		return current
	}

	performance := sum / float64(n)
	switch {
	case performance >= promoteThreshold:
		return scenario.HarderThan(current)
	case performance < demoteThreshold:
		return scenario.EasierThan(current)
	default:
		return current
	}
}
