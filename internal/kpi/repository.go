package kpi

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, k *KpiData) error
	GetByID(db *gorm.DB, id uuid.UUID) (*KpiData, error)
	ListByUser(db *gorm.DB, userID uuid.UUID) ([]KpiData, error)
	ListByUserInRange(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]KpiData, error)
	ListByStore(db *gorm.DB, storeID uuid.UUID) ([]KpiData, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, k *KpiData) error {
	return dberr.Map(db.Create(k).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*KpiData, error) {
	var k KpiData
	if err := db.First(&k, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &k, nil
}

func (r *repositoryImpl) ListByUser(db *gorm.DB, userID uuid.UUID) ([]KpiData, error) {
	var records []KpiData
	err := db.Where("user_id = ?", userID).Order("date").Find(&records).Error
	return records, dberr.Map(err)
}

func (r *repositoryImpl) ListByUserInRange(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]KpiData, error) {
	var records []KpiData
	err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").
		Find(&records).Error
	return records, dberr.Map(err)
}

func (r *repositoryImpl) ListByStore(db *gorm.DB, storeID uuid.UUID) ([]KpiData, error) {
	var records []KpiData
	err := db.Where("store_id = ?", storeID).Order("date").Find(&records).Error
	return records, dberr.Map(err)
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&KpiData{}, "id = ?", id).Error)
}
