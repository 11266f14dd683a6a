package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a live-grouping marketing/sales project. Column names match the
// wizard payload field names so the frontend shapes survive round trips.
type Project struct {
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Developer   string    `gorm:"column:developer" json:"developer"`
	Location    string    `gorm:"column:location" json:"location"`
	Latitude    *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64  `gorm:"column:longitude" json:"longitude"`
	MapAddress  string    `gorm:"column:map_address" json:"map_address"`
	Description string    `gorm:"column:description" json:"description"`

	// Type is the category chosen in wizard step 1 and is immutable after creation.
	Type      string `gorm:"column:type;type:varchar(20);not null" json:"type"`
	MinBuyers int    `gorm:"column:min_buyers;not null" json:"min_buyers"`

	Area       *float64 `gorm:"column:area;type:decimal(12,2)" json:"area"`
	Possession string   `gorm:"column:possession" json:"possession"`
	ReraNumber string   `gorm:"column:rera_number" json:"rera_number"`

	OriginalPrice *float64 `gorm:"column:original_price;type:decimal(18,2)" json:"original_price"`
	GroupPrice    *float64 `gorm:"column:group_price;type:decimal(18,2)" json:"group_price"`
	Discount      *float64 `gorm:"column:discount;type:decimal(18,2)" json:"discount"`
	Savings       *float64 `gorm:"column:savings;type:decimal(18,2)" json:"savings"`

	RegularPricePerSqft     *float64 `gorm:"column:regular_price_per_sqft;type:decimal(12,2)" json:"regular_price_per_sqft"`
	RegularPricePerSqftMax  *float64 `gorm:"column:regular_price_per_sqft_max;type:decimal(12,2)" json:"regular_price_per_sqft_max"`
	GroupPricePerSqft       *float64 `gorm:"column:group_price_per_sqft;type:decimal(12,2)" json:"group_price_per_sqft"`
	GroupPricePerSqftMax    *float64 `gorm:"column:group_price_per_sqft_max;type:decimal(12,2)" json:"group_price_per_sqft_max"`
	PriceUnit               string   `gorm:"column:price_unit;default:'sq ft'" json:"price_unit"`
	Currency                string   `gorm:"column:currency;type:varchar(8);default:'INR'" json:"currency"`
	RegularTotalPrice       *float64 `gorm:"column:regular_total_price;type:decimal(18,2)" json:"regular_total_price"`
	DiscountedTotalPriceMin *float64 `gorm:"column:discounted_total_price_min;type:decimal(18,2)" json:"discounted_total_price_min"`
	DiscountedTotalPriceMax *float64 `gorm:"column:discounted_total_price_max;type:decimal(18,2)" json:"discounted_total_price_max"`
	RegularPriceMin         *float64 `gorm:"column:regular_price_min;type:decimal(18,2)" json:"regular_price_min"`
	RegularPriceMax         *float64 `gorm:"column:regular_price_max;type:decimal(18,2)" json:"regular_price_max"`
	TotalSavingsMin         *float64 `gorm:"column:total_savings_min;type:decimal(18,2)" json:"total_savings_min"`
	TotalSavingsMax         *float64 `gorm:"column:total_savings_max;type:decimal(18,2)" json:"total_savings_max"`

	OfferType            string     `gorm:"column:offer_type" json:"offer_type"`
	DiscountPercentage   *float64   `gorm:"column:discount_percentage;type:decimal(6,2)" json:"discount_percentage"`
	DiscountLabel        string     `gorm:"column:discount_label" json:"discount_label"`
	OfferExpiryDatetime  *time.Time `gorm:"column:offer_expiry_datetime" json:"offer_expiry_datetime"`

	// Selected property types (step 3) and per-type layout configs, stored as JSON.
	PropertyTypes   datatypes.JSON `gorm:"column:property_types;type:json" json:"property_types"`
	PropertyConfigs datatypes.JSON `gorm:"column:property_configs;type:json" json:"property_configs"`

	Images      datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	BrochureURL *string        `gorm:"column:brochure_url" json:"brochure_url"`

	Status string `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`

	Towers []Tower `gorm:"foreignKey:ProjectID;references:ProjectID" json:"towers,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "Projects"
}
