package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type Repository interface {
	Create(db *gorm.DB, u *User) error
	GetByEmail(db *gorm.DB, email string) (*User, error)
	GetByID(db *gorm.DB, id uuid.UUID) (*User, error)
	ListAll(db *gorm.DB) ([]User, error)
	ListByStore(db *gorm.DB, storeID uuid.UUID) ([]User, error)
	Update(db *gorm.DB, id uuid.UUID, updated *User) error
	UpdatePassword(db *gorm.DB, id uuid.UUID, passwordHash string) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, u *User) error {
	return dberr.Map(db.Create(u).Error)
}

func (r *repositoryImpl) GetByEmail(db *gorm.DB, email string) (*User, error) {
	var u User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &u, nil
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*User, error) {
	var u User
	if err := db.Preload("Store").First(&u, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &u, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]User, error) {
	var users []User
	err := db.Preload("Store").Order("email").Find(&users).Error
	return users, dberr.Map(err)
}

func (r *repositoryImpl) ListByStore(db *gorm.DB, storeID uuid.UUID) ([]User, error) {
	var users []User
	err := db.Where("store_id = ?", storeID).Order("email").Find(&users).Error
	return users, dberr.Map(err)
}

// Update replaces the mutable profile fields. Email, role and store changes
// go through the same constraint checks as inserts.
func (r *repositoryImpl) Update(db *gorm.DB, id uuid.UUID, updated *User) error {
	var existing User
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		return dberr.Map(err)
	}

	existing.Email = updated.Email
	existing.Role = updated.Role
	existing.StoreID = updated.StoreID
	existing.ExperienceLevel = updated.ExperienceLevel
	existing.IsActive = updated.IsActive

	return dberr.Map(db.Save(&existing).Error)
}

func (r *repositoryImpl) UpdatePassword(db *gorm.DB, id uuid.UUID, passwordHash string) error {
	res := db.Model(&User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return dberr.Map(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes the user; training sessions cascade with it.
func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&User{}, "id = ?", id).Error)
}
