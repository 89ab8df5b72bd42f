package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CropType represents a reusable variety configuration. It is reference
// data created and edited by the operator and never mutated automatically.
type CropType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name string `gorm:"not null;size:255" json:"name"`

	// Stage durations. Soak is hour-granular, the rest run in whole days.
	// A duration of 0 means the stage is instantaneous for this crop.
	SoakHours       float64 `gorm:"type:decimal(6,2);default:0" json:"soak_hours"`
	GerminationDays int     `gorm:"default:0" json:"germination_days"`
	BlackoutDays    int     `gorm:"default:0" json:"blackout_days"`
	LightDays       int     `gorm:"default:0" json:"light_days"`

	// Yield and seeding
	YieldGrams  float64 `gorm:"type:decimal(8,2);default:0" json:"yield_grams"`  // expected harvest mass per tray
	SeedingRate float64 `gorm:"type:decimal(8,2);default:0" json:"seeding_rate"` // grams of seed per tray

	// Seed pricing in two package sizes, pro-rated by package weight
	SeedPackSmallGrams float64 `gorm:"type:decimal(8,2);default:0" json:"seed_pack_small_grams"`
	SeedPackSmallPrice float64 `gorm:"type:decimal(8,2);default:0" json:"seed_pack_small_price"`
	SeedPackLargeGrams float64 `gorm:"type:decimal(8,2);default:0" json:"seed_pack_large_grams"`
	SeedPackLargePrice float64 `gorm:"type:decimal(8,2);default:0" json:"seed_pack_large_price"`

	// Revenue per 100g of harvested product; 0 means unset
	RevenuePer100g float64 `gorm:"type:decimal(8,2);default:0" json:"revenue_per_100g"`
}

// TableName specifies the table name for CropType
func (CropType) TableName() string {
	return "crop_types"
}

// TotalGrowingDays returns the day-granular growing span. Soak is excluded
// because it is hour-granular and typically same-day.
func (c CropType) TotalGrowingDays() int {
	return c.GerminationDays + c.BlackoutDays + c.LightDays
}

// Tray represents one physical batch of a crop progressing through stages.
// A half-half tray splits one physical tray between two varieties via
// SecondCropTypeID.
type Tray struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	BatchCode string `gorm:"size:36;uniqueIndex" json:"batch_code"`

	CropTypeID       uint      `gorm:"not null;index" json:"crop_type_id"`
	CropType         CropType  `gorm:"foreignKey:CropTypeID" json:"crop_type,omitempty"`
	SecondCropTypeID *uint     `gorm:"index" json:"second_crop_type_id,omitempty"`
	SecondCropType   *CropType `gorm:"foreignKey:SecondCropTypeID" json:"second_crop_type,omitempty"`

	Stage Stage `gorm:"not null;size:32;index" json:"stage"`

	// StartDate marks when the CURRENT stage began. It is the anchor for
	// all time projection and is overwritten on every stage advance.
	StartDate time.Time `gorm:"index" json:"start_date"`

	// PlantedAt is the original planting timestamp, retained for display
	// only; it does not affect any calculation.
	PlantedAt time.Time `json:"planted_at"`

	Location   string   `gorm:"size:255" json:"location"`
	Notes      string   `gorm:"type:text" json:"notes"`
	YieldGrams *float64 `gorm:"type:decimal(8,2)" json:"yield_grams,omitempty"` // set only at harvest
}

// TableName specifies the table name for Tray
func (Tray) TableName() string {
	return "trays"
}

// BeforeCreate hook assigns a batch code and defaults the timestamps
func (t *Tray) BeforeCreate(tx *gorm.DB) error {
	if t.BatchCode == "" {
		t.BatchCode = uuid.NewString()
	}
	if t.Stage == "" {
		t.Stage = StageSeed
	}
	if t.StartDate.IsZero() {
		t.StartDate = time.Now()
	}
	if t.PlantedAt.IsZero() {
		t.PlantedAt = t.StartDate
	}
	return nil
}

// HalfHalf reports whether the tray is split between two varieties
func (t Tray) HalfHalf() bool {
	return t.SecondCropTypeID != nil
}

// Customer represents a buyer of harvested product
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name    string `gorm:"not null;size:255" json:"name"`
	Contact string `gorm:"size:255" json:"contact"`
	Notes   string `gorm:"type:text" json:"notes"`

	Orders []RecurringOrder `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// RecurringOrder is a standing weekly commitment to deliver a crop amount
// to a customer on a given weekday. Orders are created and deleted directly
// by the operator, never generated.
type RecurringOrder struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CropTypeID uint     `gorm:"not null;index" json:"crop_type_id"`
	CropType   CropType `gorm:"foreignKey:CropTypeID" json:"crop_type,omitempty"`

	AmountGrams float64 `gorm:"type:decimal(8,2);not null" json:"amount_grams"`

	// DueWeekday is calendar-week relative (time.Weekday, Sunday = 0),
	// not tied to a specific date.
	DueWeekday time.Weekday `gorm:"not null" json:"due_weekday"`
}

// TableName specifies the table name for RecurringOrder
func (RecurringOrder) TableName() string {
	return "recurring_orders"
}
