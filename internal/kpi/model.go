package kpi

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/store"
	"github.com/maxretail/training-api/internal/user"
)

// KpiData is one day of store-floor performance for one user at one store.
// The (user, store, date) triple is unique; re-ingesting a day is a conflict,
// not a silent overwrite. Users and stores with KPI history cannot be deleted
// (explicit RESTRICT, see DESIGN.md).
type KpiData struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_kpi_user_store_date" json:"userId"`
	StoreID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_kpi_user_store_date" json:"storeId"`
	Date    datatypes.Date `gorm:"not null;uniqueIndex:ux_kpi_user_store_date" json:"date"`

	ConversionRate       float64 `gorm:"not null;default:0" json:"conversionRate"`
	AvgBillValue         float64 `gorm:"not null;default:0" json:"avgBillValue"`
	Footfall             int     `gorm:"not null;default:0" json:"footfall"`
	SalesTarget          float64 `gorm:"not null;default:0" json:"salesTarget"`
	ActualSales          float64 `gorm:"not null;default:0" json:"actualSales"`
	ReturnRate           float64 `gorm:"not null;default:0" json:"returnRate"`
	CustomerSatisfaction float64 `gorm:"not null;default:0" json:"customerSatisfaction"`

	CreatedAt time.Time `json:"createdAt"`

	User  *user.User   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Store *store.Store `gorm:"foreignKey:StoreID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (KpiData) TableName() string { return "kpi_data" }

func (k *KpiData) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
