package interaction

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, i *TrainingInteraction) error
	GetByID(db *gorm.DB, id uuid.UUID) (*TrainingInteraction, error)
	ListBySession(db *gorm.DB, sessionID uuid.UUID) ([]TrainingInteraction, error)
	NextOrder(db *gorm.DB, sessionID uuid.UUID) (int, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, i *TrainingInteraction) error {
	return dberr.Map(db.Create(i).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*TrainingInteraction, error) {
	var i TrainingInteraction
	if err := db.First(&i, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &i, nil
}

func (r *repositoryImpl) ListBySession(db *gorm.DB, sessionID uuid.UUID) ([]TrainingInteraction, error) {
	var interactions []TrainingInteraction
	err := db.Where("session_id = ?", sessionID).
		Order("interaction_order, created_at").
		Find(&interactions).Error
	return interactions, dberr.Map(err)
}

// NextOrder returns the next free position within a session's exchange
// sequence.
func (r *repositoryImpl) NextOrder(db *gorm.DB, sessionID uuid.UUID) (int, error) {
	var max *int
	err := db.Model(&TrainingInteraction{}).
		Where("session_id = ?", sessionID).
		Select("max(interaction_order)").
		Scan(&max).Error
	if err != nil {
		return 0, dberr.Map(err)
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&TrainingInteraction{}, "id = ?", id).Error)
}
