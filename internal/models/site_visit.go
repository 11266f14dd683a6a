package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site visit statuses.
const (
	VisitStatusScheduled   = "scheduled"
	VisitStatusRescheduled = "rescheduled"
	VisitStatusCancelled   = "cancelled"
)

// SiteVisit is a booked pick-up-and-drop site tour. Date and time are kept as
// the form strings ("2006-01-02", "15:04"); validation happens in the service.
type SiteVisit struct {
	VisitID       uuid.UUID  `gorm:"column:visit_id;type:uuid;primaryKey" json:"visit_id"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	VisitDate     string     `gorm:"column:visit_date;type:varchar(10);not null" json:"date"`
	VisitTime     string     `gorm:"column:visit_time;type:varchar(5);not null" json:"time"`
	People        int        `gorm:"column:people;not null;default:1" json:"people"`
	Person1       string     `gorm:"column:person1;not null" json:"person1"`
	Person2       string     `gorm:"column:person2" json:"person2"`
	Person3       string     `gorm:"column:person3" json:"person3"`
	PickupAddress string     `gorm:"column:pickup_address;not null" json:"address"`
	PaymentMethod string     `gorm:"column:payment_method;type:varchar(10);not null" json:"payment_method"`
	ChargeAmount  float64    `gorm:"column:charge_amount;type:decimal(10,2);not null" json:"charge_amount"`
	PaymentID     *string    `gorm:"column:payment_id" json:"payment_id"`
	Status        string     `gorm:"column:status;type:varchar(20);default:'scheduled'" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SiteVisit) TableName() string {
	return "SiteVisits"
}
