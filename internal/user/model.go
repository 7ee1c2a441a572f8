package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/store"
)

// Roles accepted by the check constraint.
const (
	RoleStoreManager    = "store_manager"
	RoleRegionalManager = "regional_manager"
	RoleTrainer         = "trainer"
	RoleAdmin           = "admin"
)

// User is a trainee or administrator of the platform. UpdatedAt is refreshed
// on every update by the audit callback, mirroring the original database
// trigger, no matter what value a caller writes into it.
type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"size:50;not null;check:role IN ('store_manager','regional_manager','trainer','admin')" json:"role"`
	StoreID         *uuid.UUID `gorm:"type:uuid;index" json:"storeId,omitempty"`
	ExperienceLevel int        `gorm:"not null;default:0" json:"experienceLevel"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Store assignment. Deleting a store that still has users fails; users
	// must be reassigned first (explicit RESTRICT, see DESIGN.md).
	Store *store.Store `gorm:"foreignKey:StoreID;constraint:OnDelete:RESTRICT" json:"store,omitempty"`

	// Stores this user manages. Deleting the manager nulls the reference
	// instead of deleting the store.
	ManagedStores []store.Store `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one of the accepted user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStoreManager, RoleRegionalManager, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}
