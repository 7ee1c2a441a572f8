package interaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/scenario"
	"github.com/maxretail/training-api/internal/session"
)

// TrainingInteraction is one question/answer exchange within a session.
// Deleting the session removes its interactions; deleting the referenced
// scenario only nulls the pointer, the exchange itself stays.
type TrainingInteraction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"sessionId"`
	ScenarioID *uuid.UUID `gorm:"type:uuid" json:"scenarioId,omitempty"`

	Question     string `gorm:"type:text;not null" json:"question"`
	UserResponse string `gorm:"type:text" json:"userResponse"`

	AIEvaluation datatypes.JSON `gorm:"type:jsonb" json:"aiEvaluation,omitempty"`
	Feedback     string         `gorm:"type:text" json:"feedback"`

	InteractionOrder int       `gorm:"not null;default:0" json:"interactionOrder"`
	ResponseTime     int       `gorm:"not null;default:0" json:"responseTime"`
	CreatedAt        time.Time `json:"createdAt"`

	Session  *session.TrainingSession   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Scenario *scenario.TrainingScenario `gorm:"foreignKey:ScenarioID;constraint:OnDelete:SET NULL" json:"-"`
}

func (TrainingInteraction) TableName() string { return "training_interactions" }

func (i *TrainingInteraction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
