package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead is a captured enquiry from the public lead form.
type Lead struct {
	LeadID        uuid.UUID `gorm:"column:lead_id;type:uuid;primaryKey" json:"lead_id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Email         string    `gorm:"column:email;not null" json:"email"`
	Phone         string    `gorm:"column:phone;not null" json:"phone"`
	PropertyType  string    `gorm:"column:property_type;not null" json:"property_type"`
	Message       string    `gorm:"column:message" json:"message"`
	PropertyTitle string    `gorm:"column:property_title" json:"property_title"`
	Source        string    `gorm:"column:source;default:'General'" json:"source"`
	Status        string    `gorm:"column:status;type:varchar(20);default:'new'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lead) TableName() string {
	return "Leads"
}
