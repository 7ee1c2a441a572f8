package persona

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, p *Persona) error
	GetByID(db *gorm.DB, id uuid.UUID) (*Persona, error)
	GetByName(db *gorm.DB, name string) (*Persona, error)
	ListActive(db *gorm.DB) ([]Persona, error)
	Update(db *gorm.DB, id uuid.UUID, updated *Persona) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *Persona) error {
	return dberr.Map(db.Create(p).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*Persona, error) {
	var p Persona
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &p, nil
}

func (r *repositoryImpl) GetByName(db *gorm.DB, name string) (*Persona, error) {
	var p Persona
	if err := db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &p, nil
}

func (r *repositoryImpl) ListActive(db *gorm.DB) ([]Persona, error) {
	var personas []Persona
	err := db.Where("is_active = ?", true).Order("name").Find(&personas).Error
	return personas, dberr.Map(err)
}

func (r *repositoryImpl) Update(db *gorm.DB, id uuid.UUID, updated *Persona) error {
	var existing Persona
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		return dberr.Map(err)
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Profile = updated.Profile
	existing.Scenarios = updated.Scenarios
	existing.DifficultyMapping = updated.DifficultyMapping
	existing.IsActive = updated.IsActive

	return dberr.Map(db.Save(&existing).Error)
}

// Delete removes the persona and, through the cascade, every training
// scenario that belongs to it.
func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&Persona{}, "id = ?", id).Error)
}
