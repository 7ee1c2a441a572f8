package scenario

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/persona"
)

// Difficulty levels accepted by the check constraint. The constraint is
// case-insensitive; values are normalized to lowercase before writes.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// Ladder orders the difficulty levels from easiest to hardest.
var Ladder = []string{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

// TrainingScenario is a single practice situation for a persona. Deleting the
// persona removes its scenarios.
type TrainingScenario struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PersonaID   uuid.UUID `gorm:"type:uuid;not null;index" json:"personaId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	DifficultyLevel string `gorm:"size:20;not null;check:lower(difficulty_level) IN ('easy','medium','hard','expert')" json:"difficultyLevel"`
	KpiFocus        string `gorm:"size:255" json:"kpiFocus"`

	ScenarioData       datatypes.JSON `gorm:"type:jsonb;not null" json:"scenarioData"`
	ResponseGuidelines datatypes.JSON `gorm:"type:jsonb" json:"responseGuidelines,omitempty"`
	EvaluationCriteria datatypes.JSON `gorm:"type:jsonb" json:"evaluationCriteria,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Persona *persona.Persona `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TrainingScenario) TableName() string { return "training_scenarios" }

func (s *TrainingScenario) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *TrainingScenario) BeforeSave(tx *gorm.DB) error {
	s.DifficultyLevel = NormalizeDifficulty(s.DifficultyLevel)
	return nil
}

// NormalizeDifficulty lowercases and trims a difficulty value.
func NormalizeDifficulty(d string) string {
	return strings.ToLower(strings.TrimSpace(d))
}

// ValidDifficulty reports whether d is an accepted level, ignoring case.
func ValidDifficulty(d string) bool {
	switch NormalizeDifficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// HarderThan returns the next level up the ladder, capped at expert.
func HarderThan(d string) string {
	return step(d, 1)
}

// EasierThan returns the next level down the ladder, capped at easy.
func EasierThan(d string) string {
	return step(d, -1)
}

func step(d string, delta int) string {
	d = NormalizeDifficulty(d)
	for i, level := range Ladder {
		if level == d {
			next := i + delta
			if next < 0 {
				next = 0
			}
			if next >= len(Ladder) {
				next = len(Ladder) - 1
			}
			return Ladder[next]
		}
	}
	return d
}
