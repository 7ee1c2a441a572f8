package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store sizes accepted by the check constraint.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Store is a retail location. The manager reference is declared from the user
// side (users own the FK constraint) to keep the packages acyclic; deleting a
// manager nulls it out rather than removing the store.
type Store struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Location  string     `gorm:"not null" json:"location"`
	Region    *string    `gorm:"size:100" json:"region,omitempty"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index" json:"managerId,omitempty"`
	StoreSize string     `gorm:"size:20;not null;default:'medium';check:store_size IN ('small','medium','large')" json:"storeSize"`

	// Per-store KPI targets, opaque to the schema
	TargetMetrics datatypes.JSON `gorm:"type:jsonb" json:"targetMetrics,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Store) TableName() string { return "stores" }

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidSize reports whether size is one of the accepted store sizes.
func ValidSize(size string) bool {
	switch size {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}
