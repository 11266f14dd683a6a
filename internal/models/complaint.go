package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a user-filed issue tracked by admins.
type Complaint struct {
	ComplaintID uuid.UUID `gorm:"column:complaint_id;type:uuid;primaryKey" json:"complaint_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Subject     string    `gorm:"column:subject;not null" json:"subject"`
	Description string    `gorm:"column:description;not null" json:"description"`
	Category    string    `gorm:"column:category" json:"category"`
	Status      string    `gorm:"column:status;type:varchar(20);default:'new'" json:"status"`
	AdminNote   string    `gorm:"column:admin_note" json:"admin_note"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Complaint) TableName() string {
	return "Complaints"
}
