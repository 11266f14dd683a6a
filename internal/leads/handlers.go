package leads

import (
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[string]int{
	"Name, email, phone and property type are required": 400,
	"Invalid Email":        400,
	"Invalid phone number": 400,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// CreateLead POST /api/v1/leads — public, no auth.
func (h *Handlers) CreateLead(c *fiber.Ctx) error {
	var in CreateLeadInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	lead, err := h.Service.CreateLead(c.Context(), in)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.SuccessCreated(c, "Lead captured", lead, nil)
}

// GetAllLeads GET /api/v1/leads/get-all-leads — admin only.
func (h *Handlers) GetAllLeads(c *fiber.Ctx) error {
	leads, err := h.Service.GetAllLeads(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Leads fetched", leads, nil)
}
