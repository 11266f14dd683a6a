package subscriptions

import (
	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/payments"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service       *Service
	StripeCreator payments.PaymentIntentCreator
}

var statusMap = map[string]int{
	"Unknown subscription plan": 400,
	"User not found":            404,
	"Not authenticated":         401,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// GetPlans GET /api/v1/subscriptions/plans
func (h *Handlers) GetPlans(c *fiber.Ctx) error {
	return response.Success(c, "Plans fetched", Plans, nil)
}

// Subscribe POST /api/v1/subscriptions/subscribe
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var body struct {
		PlanID string `json:"plan_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.PlanID == "" {
		return response.Error(c, "plan_id is required", 400, nil)
	}
	userID := middleware.ActorID(c)
	user, plan, err := h.Service.Subscribe(c.Context(), userID, body.PlanID)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}

	data := fiber.Map{
		"plan":                plan,
		"subscription_expiry": user.SubscriptionExpiry,
	}
	if h.StripeCreator != nil {
		pi, err := h.StripeCreator.Create(int64(plan.PriceINR*100), "inr", map[string]string{
			"kind":    "subscription",
			"plan_id": plan.ID,
			"user_id": userID.String(),
		})
		if err != nil {
			return response.Error(c, err.Error(), 500, nil)
		}
		data["payment_intent_id"] = pi.ID
		data["client_secret"] = pi.ClientSecret
	}
	return response.SuccessCreated(c, "Subscription activated", data, nil)
}
