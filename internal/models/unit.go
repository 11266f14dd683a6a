package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit statuses. Transitions are admin-driven (lock/book/release) and the
// database is the source of truth; the client never pre-checks.
const (
	UnitStatusAvailable = "available"
	UnitStatusLocked    = "locked"
	UnitStatusBooked    = "booked"
)

// Unit is the leaf sellable entity (flat, bungalow, plot or commercial shop).
type Unit struct {
	UnitID     uuid.UUID `gorm:"column:unit_id;type:uuid;primaryKey" json:"id"`
	TowerID    uuid.UUID `gorm:"column:tower_id;type:uuid;not null;index" json:"tower_id"`
	UnitNumber string    `gorm:"column:unit_number;not null" json:"unit_number"`
	UnitType   string    `gorm:"column:unit_type;not null" json:"unit_type"`

	// FloorNumber may be negative (basement) or 0 (ground / synthetic floor).
	FloorNumber int `gorm:"column:floor_number;not null;default:0" json:"floor_number"`

	Area                 float64  `gorm:"column:area;type:decimal(12,2);not null;default:0" json:"area"`
	CarpetArea           float64  `gorm:"column:carpet_area;type:decimal(12,2);not null;default:0" json:"carpet_area"`
	SuperBuiltUpArea     float64  `gorm:"column:super_built_up_area;type:decimal(12,2);not null;default:0" json:"super_built_up_area"`
	PricePerSqft         float64  `gorm:"column:price_per_sqft;type:decimal(12,2);not null;default:0" json:"price_per_sqft"`
	DiscountPricePerSqft *float64 `gorm:"column:discount_price_per_sqft;type:decimal(12,2)" json:"discount_price_per_sqft"`
	Price                float64  `gorm:"column:price;type:decimal(18,2);not null;default:0" json:"price"`

	PlotWidth *float64 `gorm:"column:plot_width;type:decimal(10,2)" json:"plot_width"`
	PlotDepth *float64 `gorm:"column:plot_depth;type:decimal(10,2)" json:"plot_depth"`

	ImageURL *string `gorm:"column:unit_image_url" json:"unit_image_url"`

	Status    string   `gorm:"column:status;type:varchar(20);default:'available'" json:"status"`
	BookedBy  *string  `gorm:"column:booked_by" json:"booked_by"`
	PaymentID *string  `gorm:"column:payment_id" json:"payment_id"`
	Amount    *float64 `gorm:"column:booking_amount;type:decimal(18,2)" json:"booking_amount"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Unit) TableName() string {
	return "Units"
}
