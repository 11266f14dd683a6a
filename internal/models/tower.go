package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tower groups units within a project. Depending on the property type the UI
// calls it Tower, Block, Sector or Building; the row shape is the same.
type Tower struct {
	TowerID      uuid.UUID `gorm:"column:tower_id;type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	Name         string    `gorm:"column:tower_name;not null" json:"tower_name"`
	PropertyType string    `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`

	// TotalFloors is 0 for flat/land-style types that are not floor-organized.
	TotalFloors   int  `gorm:"column:total_floors;not null;default:0" json:"total_floors"`
	LayoutColumns *int `gorm:"column:layout_columns" json:"layout_columns"`
	LayoutRows    *int `gorm:"column:layout_rows" json:"layout_rows"`

	// Position preserves compile order (commercial block first, then selection order).
	Position int `gorm:"column:position;not null;default:0" json:"position"`

	Units []Unit `gorm:"foreignKey:TowerID;references:TowerID" json:"units,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tower) TableName() string {
	return "Towers"
}
