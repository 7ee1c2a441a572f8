package scenario

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, s *TrainingScenario) error
	GetByID(db *gorm.DB, id uuid.UUID) (*TrainingScenario, error)
	ListByPersona(db *gorm.DB, personaID uuid.UUID) ([]TrainingScenario, error)
	ListByPersonaAndDifficulty(db *gorm.DB, personaID uuid.UUID, difficulty string) ([]TrainingScenario, error)
	ListByDifficulty(db *gorm.DB, difficulty string) ([]TrainingScenario, error)
	Random(db *gorm.DB, personaID uuid.UUID, difficulty string) (*TrainingScenario, error)
	Update(db *gorm.DB, id uuid.UUID, updated *TrainingScenario) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, s *TrainingScenario) error {
	return dberr.Map(db.Create(s).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*TrainingScenario, error) {
	var s TrainingScenario
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &s, nil
}

func (r *repositoryImpl) ListByPersona(db *gorm.DB, personaID uuid.UUID) ([]TrainingScenario, error) {
	var scenarios []TrainingScenario
	err := db.Where("persona_id = ? AND is_active = ?", personaID, true).
		Order("difficulty_level, title").
		Find(&scenarios).Error
	return scenarios, dberr.Map(err)
}

func (r *repositoryImpl) ListByPersonaAndDifficulty(db *gorm.DB, personaID uuid.UUID, difficulty string) ([]TrainingScenario, error) {
	var scenarios []TrainingScenario
	err := db.Where("persona_id = ? AND lower(difficulty_level) = ? AND is_active = ?",
		personaID, NormalizeDifficulty(difficulty), true).
		Order("title").
		Find(&scenarios).Error
	return scenarios, dberr.Map(err)
}

func (r *repositoryImpl) ListByDifficulty(db *gorm.DB, difficulty string) ([]TrainingScenario, error) {
	var scenarios []TrainingScenario
	err := db.Where("lower(difficulty_level) = ? AND is_active = ?", NormalizeDifficulty(difficulty), true).
		Order("title").
		Find(&scenarios).Error
	return scenarios, dberr.Map(err)
}

// Random picks one active scenario for the persona/difficulty pair, letting
// the database do the shuffle.
func (r *repositoryImpl) Random(db *gorm.DB, personaID uuid.UUID, difficulty string) (*TrainingScenario, error) {
	var s TrainingScenario
	err := db.Where("persona_id = ? AND lower(difficulty_level) = ? AND is_active = ?",
		personaID, NormalizeDifficulty(difficulty), true).
		Order("random()").
		First(&s).Error
	if err != nil {
		return nil, dberr.Map(err)
	}
	return &s, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, id uuid.UUID, updated *TrainingScenario) error {
	var existing TrainingScenario
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		return dberr.Map(err)
	}

	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.DifficultyLevel = updated.DifficultyLevel
	existing.KpiFocus = updated.KpiFocus
	existing.ScenarioData = updated.ScenarioData
	existing.ResponseGuidelines = updated.ResponseGuidelines
	existing.EvaluationCriteria = updated.EvaluationCriteria
	existing.IsActive = updated.IsActive

	return dberr.Map(db.Save(&existing).Error)
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&TrainingScenario{}, "id = ?", id).Error)
}
