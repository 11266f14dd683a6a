package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a site account. Subscription fields are stamped by the
// subscriptions module and gate property posting.
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string    `gorm:"column:fullname;not null" json:"fullname"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);default:'user'" json:"role"`

	SubscriptionPlan   *string    `gorm:"column:subscription_plan" json:"subscription_plan"`
	SubscriptionExpiry *time.Time `gorm:"column:subscription_expiry" json:"subscription_expiry"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

// HasActiveSubscription reports whether the user holds an unexpired plan.
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.SubscriptionPlan != nil && u.SubscriptionExpiry != nil && u.SubscriptionExpiry.After(now)
}
