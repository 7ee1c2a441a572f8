package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/user"
)

// Session statuses accepted by the check constraint. A session starts active
// and ends completed or abandoned; there are no other transitions.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// TrainingSession is one run of a trainee through a scenario. PersonaType and
// DifficultyLevel are denormalized strings, not foreign keys: the scenario is
// snapshot into ScenarioData at start so later catalog edits don't rewrite
// history. Deleting the user removes their sessions.
type TrainingSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`

	PersonaType     string `gorm:"size:255;not null" json:"personaType"`
	DifficultyLevel string `gorm:"size:20;not null" json:"difficultyLevel"`

	ScenarioData datatypes.JSON `gorm:"type:jsonb" json:"scenarioData,omitempty"`
	Responses    datatypes.JSON `gorm:"type:jsonb" json:"responses,omitempty"`
	Scores       datatypes.JSON `gorm:"type:jsonb" json:"scores,omitempty"`

	CompletionTime int    `gorm:"not null;default:0" json:"completionTime"`
	SessionStatus  string `gorm:"size:20;not null;default:'active';check:session_status IN ('active','completed','abandoned')" json:"sessionStatus"`

	StartedAt   time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TrainingSession) TableName() string { return "training_sessions" }

func (s *TrainingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SessionStatus == "" {
		s.SessionStatus = StatusActive
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	return nil
}
