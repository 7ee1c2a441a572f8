package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, s *Store) error
	GetByID(db *gorm.DB, id uuid.UUID) (*Store, error)
	ListAll(db *gorm.DB) ([]Store, error)
	ListActive(db *gorm.DB) ([]Store, error)
	Update(db *gorm.DB, id uuid.UUID, updated *Store) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, s *Store) error {
	return dberr.Map(db.Create(s).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*Store, error) {
	var s Store
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &s, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Store, error) {
	var stores []Store
	err := db.Order("name").Find(&stores).Error
	return stores, dberr.Map(err)
}

func (r *repositoryImpl) ListActive(db *gorm.DB) ([]Store, error) {
	var stores []Store
	err := db.Where("is_active = ?", true).Order("name").Find(&stores).Error
	return stores, dberr.Map(err)
}

func (r *repositoryImpl) Update(db *gorm.DB, id uuid.UUID, updated *Store) error {
	var existing Store
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		return dberr.Map(err)
	}

	existing.Name = updated.Name
	existing.Location = updated.Location
	existing.Region = updated.Region
	existing.ManagerID = updated.ManagerID
	existing.StoreSize = updated.StoreSize
	existing.TargetMetrics = updated.TargetMetrics
	existing.IsActive = updated.IsActive

	return dberr.Map(db.Save(&existing).Error)
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&Store{}, "id = ?", id).Error)
}
