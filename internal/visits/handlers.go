package visits

import (
	"math"
	"strconv"

	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/payments"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service       *Service
	StripeCreator payments.PaymentIntentCreator
}

var statusMap = map[string]int{
	"Date, time and pickup address are required": 400,
	"Invalid visit date":                         400,
	"Invalid visit time":                         400,
	"Visit date must be in the future":           400,
	"Visits run between 10:00 and 17:00":         400,
	"People must be between 1 and 3":             400,
	"Visitor name is required":                   400,
	"Name required for every visitor":            400,
	"Payment method must be previsit or postvisit": 400,
	"Visit not found":    404,
	"Visit is cancelled": 409,
	"Not authenticated":  401,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// BookVisit POST /api/v1/visits/book-visit — previsit bookings also get a
// Stripe PaymentIntent for the charge.
func (h *Handlers) BookVisit(c *fiber.Ctx) error {
	var in BookVisitInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	userID := middleware.ActorID(c)
	visit, err := h.Service.BookVisit(c.Context(), userID, in)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}

	data := fiber.Map{"visit": visit}
	if visit.PaymentMethod == "previsit" && h.StripeCreator != nil {
		amountCents := int64(math.Round(visit.ChargeAmount * 100))
		pi, err := h.StripeCreator.Create(amountCents, "inr", map[string]string{
			"kind":     "site_visit",
			"visit_id": visit.VisitID.String(),
			"user_id":  userID.String(),
			"charge":   strconv.FormatFloat(visit.ChargeAmount, 'f', 2, 64),
		})
		if err != nil {
			return response.Error(c, err.Error(), 500, nil)
		}
		data["payment_intent_id"] = pi.ID
		data["client_secret"] = pi.ClientSecret
	}
	return response.SuccessCreated(c, "Visit booked", data, nil)
}

// RescheduleVisit POST /api/v1/visits/reschedule-visit
func (h *Handlers) RescheduleVisit(c *fiber.Ctx) error {
	var body struct {
		VisitID string `json:"visit_id"`
		Date    string `json:"date"`
		Time    string `json:"time"`
	}
	if err := c.BodyParser(&body); err != nil || body.VisitID == "" {
		return response.Error(c, "visit_id is required", 400, nil)
	}
	visitID, err := uuid.Parse(body.VisitID)
	if err != nil {
		return response.Error(c, "Invalid visit_id", 400, nil)
	}
	visit, err := h.Service.RescheduleVisit(c.Context(), middleware.ActorID(c), visitID, body.Date, body.Time)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Visit rescheduled", visit, nil)
}

// CancelVisit POST /api/v1/visits/cancel-visit
func (h *Handlers) CancelVisit(c *fiber.Ctx) error {
	var body struct {
		VisitID string `json:"visit_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.VisitID == "" {
		return response.Error(c, "visit_id is required", 400, nil)
	}
	visitID, err := uuid.Parse(body.VisitID)
	if err != nil {
		return response.Error(c, "Invalid visit_id", 400, nil)
	}
	visit, err := h.Service.CancelVisit(c.Context(), middleware.ActorID(c), visitID)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Visit cancelled", visit, nil)
}

// GetMyVisits GET /api/v1/visits/get-my-visits
func (h *Handlers) GetMyVisits(c *fiber.Ctx) error {
	visits, err := h.Service.GetMyVisits(c.Context(), middleware.ActorID(c))
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Visits fetched", visits, nil)
}
