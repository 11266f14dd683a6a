package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property is a user-posted listing (individual or developer), distinct from
// admin live-grouping projects.
type Property struct {
	PropertyID  uuid.UUID `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	OwnerType   string    `gorm:"column:owner_type;type:varchar(20);not null" json:"owner_type"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Type        string    `gorm:"column:type;not null" json:"type"`
	Location    string    `gorm:"column:location;not null" json:"location"`
	Price       float64   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Bhk         string    `gorm:"column:bhk" json:"bhk"`
	Description string    `gorm:"column:description" json:"description"`
	Facilities  string    `gorm:"column:facilities" json:"facilities"`
	ImageURL    string    `gorm:"column:image_url" json:"image"`

	// Developer-specific fields, empty for individual posts.
	CompanyName    string `gorm:"column:company_name" json:"company_name"`
	ProjectName    string `gorm:"column:project_name" json:"project_name"`
	TotalUnits     *int   `gorm:"column:total_units" json:"total_units"`
	CompletionDate string `gorm:"column:completion_date" json:"completion_date"`
	ReraNumber     string `gorm:"column:rera_number" json:"rera_number"`

	Status string `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "Properties"
}
