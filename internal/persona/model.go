package persona

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Persona is a customer archetype used to parameterize training scenarios.
// Profile, Scenarios and DifficultyMapping are opaque JSON payloads; their
// shape is a convention between the clients, not enforced here.
type Persona struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Profile           datatypes.JSON `gorm:"type:jsonb" json:"profile,omitempty"`
	Scenarios         datatypes.JSON `gorm:"type:jsonb" json:"scenarios,omitempty"`
	DifficultyMapping datatypes.JSON `gorm:"type:jsonb" json:"difficultyMapping,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Persona) TableName() string { return "personas" }

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
