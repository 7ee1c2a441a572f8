package transcript

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Upsert(db *gorm.DB, t *TrainingTranscript) error
	GetBySession(db *gorm.DB, sessionID uuid.UUID) (*TrainingTranscript, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Upsert writes the transcript for a session, replacing an earlier one.
func (r *repositoryImpl) Upsert(db *gorm.DB, t *TrainingTranscript) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_transcript", "summary", "word_count"}),
	}).Create(t).Error
	return dberr.Map(err)
}

func (r *repositoryImpl) GetBySession(db *gorm.DB, sessionID uuid.UUID) (*TrainingTranscript, error) {
	var t TrainingTranscript
	if err := db.Where("session_id = ?", sessionID).First(&t).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &t, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&TrainingTranscript{}, "id = ?", id).Error)
}
