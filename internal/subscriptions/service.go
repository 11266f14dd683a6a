package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Months   int     `json:"months"`
	PriceINR float64 `json:"price"`
}

// Plans is the fixed catalogue, cheapest first.
var Plans = []Plan{
	{ID: "1_month", Name: "1 Month", Months: 1, PriceINR: 3000},
	{ID: "3_months", Name: "3 Months", Months: 3, PriceINR: 8000},
	{ID: "6_months", Name: "6 Months", Months: 6, PriceINR: 15000},
	{ID: "12_months", Name: "12 Months", Months: 12, PriceINR: 25000},
}

func planByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

type Service struct {
	DB *gorm.DB
}

// Subscribe stamps the plan on the user. Renewing while a plan is still
// active extends from the current expiry rather than from now.
func (s *Service) Subscribe(ctx context.Context, userID uuid.UUID, planID string) (*models.User, Plan, error) {
	if userID == uuid.Nil {
		return nil, Plan{}, errors.New("Not authenticated")
	}
	plan, ok := planByID(planID)
	if !ok {
		return nil, Plan{}, errors.New("Unknown subscription plan")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, Plan{}, errors.New("User not found")
		}
		return nil, Plan{}, err
	}

	now := time.Now()
	start := now
	if user.HasActiveSubscription(now) {
		start = *user.SubscriptionExpiry
	}
	expiry := start.AddDate(0, plan.Months, 0)

	updates := map[string]interface{}{
		"subscription_plan":   plan.ID,
		"subscription_expiry": expiry,
	}
	if err := s.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, Plan{}, fmt.Errorf("Failed to update subscription: %v", err)
	}
	user.SubscriptionPlan = &plan.ID
	user.SubscriptionExpiry = &expiry
	return &user, plan, nil
}
