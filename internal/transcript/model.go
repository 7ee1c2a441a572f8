package transcript

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/session"
)

// TrainingTranscript is the full record of a session's dialogue, one per
// session. Deleting the session removes it.
type TrainingTranscript struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"sessionId"`

	FullTranscript datatypes.JSON `gorm:"type:jsonb;not null" json:"fullTranscript"`
	Summary        string         `gorm:"type:text" json:"summary"`
	WordCount      int            `gorm:"not null;default:0" json:"wordCount"`
	CreatedAt      time.Time      `json:"createdAt"`

	Session *session.TrainingSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TrainingTranscript) TableName() string { return "training_transcripts" }

func (t *TrainingTranscript) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *TrainingTranscript) BeforeSave(tx *gorm.DB) error {
	if t.WordCount == 0 {
		t.WordCount = CountWords(t.FullTranscript)
	}
	return nil
}
