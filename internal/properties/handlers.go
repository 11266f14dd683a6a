package properties

import (
	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[string]int{
	"Property not found":                          404,
	"User not found":                              404,
	"Not authenticated":                           401,
	"Active subscription required to post properties": 403,
	"Owner type must be individual or developer":      400,
	"Title, type and location are required":           400,
	"Price must be positive":                          400,
	"BHK applies only to flats, houses and villas":    400,
	"Company and project name are required for developer listings": 400,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// Search GET /api/v1/properties/search
func (h *Handlers) Search(c *fiber.Ctx) error {
	filters := SearchFilters{
		Query:    c.Query("q"),
		Type:     c.Query("type"),
		Bhk:      c.Query("bhk"),
		Location: c.Query("location"),
	}
	props, err := h.Service.Search(c.Context(), filters)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Properties fetched", props, nil)
}

// GetProperty GET /api/v1/properties/get-property/:property_id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return response.Error(c, "Invalid property_id", 400, nil)
	}
	prop, err := h.Service.GetProperty(c.Context(), propertyID)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Property fetched", prop, nil)
}

// PostProperty POST /api/v1/properties/post-property
func (h *Handlers) PostProperty(c *fiber.Ctx) error {
	var in PostPropertyInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	prop, err := h.Service.PostProperty(c.Context(), middleware.ActorID(c), in)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.SuccessCreated(c, "Property posted", prop, nil)
}
