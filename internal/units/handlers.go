package units

import (
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[string]int{
	"Unit not found":         404,
	"unit_id is required":    400,
	"Unit is not available":  409,
	"Unit is already booked": 409,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

func parseUnitID(c *fiber.Ctx, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// LockUnit POST /api/v1/units/lock-unit
func (h *Handlers) LockUnit(c *fiber.Ctx) error {
	var body struct {
		UnitID   string `json:"unit_id"`
		LockedBy string `json:"locked_by"`
	}
	if err := c.BodyParser(&body); err != nil || body.UnitID == "" {
		return response.Error(c, "unit_id is required", 400, nil)
	}
	id, ok := parseUnitID(c, body.UnitID)
	if !ok {
		return response.Error(c, "Invalid unit_id", 400, nil)
	}
	unit, err := h.Service.LockUnit(c.Context(), id, body.LockedBy)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Unit locked", unit, nil)
}

// BookUnit POST /api/v1/units/book-unit
func (h *Handlers) BookUnit(c *fiber.Ctx) error {
	var body struct {
		UnitID    string  `json:"unit_id"`
		BookedBy  string  `json:"booked_by"`
		PaymentID string  `json:"payment_id"`
		Amount    float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil || body.UnitID == "" {
		return response.Error(c, "unit_id is required", 400, nil)
	}
	id, ok := parseUnitID(c, body.UnitID)
	if !ok {
		return response.Error(c, "Invalid unit_id", 400, nil)
	}
	unit, err := h.Service.BookUnit(c.Context(), id, body.BookedBy, body.PaymentID, body.Amount)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Unit booked", unit, nil)
}

// ReleaseUnit POST /api/v1/units/release-unit
func (h *Handlers) ReleaseUnit(c *fiber.Ctx) error {
	var body struct {
		UnitID string `json:"unit_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.UnitID == "" {
		return response.Error(c, "unit_id is required", 400, nil)
	}
	id, ok := parseUnitID(c, body.UnitID)
	if !ok {
		return response.Error(c, "Invalid unit_id", 400, nil)
	}
	unit, err := h.Service.ReleaseUnit(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Unit released", unit, nil)
}

// UpdateUnit PATCH /api/v1/units/update-unit
func (h *Handlers) UpdateUnit(c *fiber.Ctx) error {
	var body struct {
		UnitID               string   `json:"unit_id"`
		UnitNumber           *string  `json:"unit_number"`
		UnitType             *string  `json:"unit_type"`
		Area                 *float64 `json:"area"`
		CarpetArea           *float64 `json:"carpet_area"`
		SuperBuiltUpArea     *float64 `json:"super_built_up_area"`
		PricePerSqft         *float64 `json:"price_per_sqft"`
		DiscountPricePerSqft *float64 `json:"discount_price_per_sqft"`
		ClearDiscount        bool     `json:"clear_discount"`
		ImageURL             *string  `json:"unit_image_url"`
	}
	if err := c.BodyParser(&body); err != nil || body.UnitID == "" {
		return response.Error(c, "unit_id is required", 400, nil)
	}
	id, ok := parseUnitID(c, body.UnitID)
	if !ok {
		return response.Error(c, "Invalid unit_id", 400, nil)
	}
	unit, err := h.Service.UpdateUnit(c.Context(), id, UpdateUnitInput{
		UnitNumber:           body.UnitNumber,
		UnitType:             body.UnitType,
		Area:                 body.Area,
		CarpetArea:           body.CarpetArea,
		SuperBuiltUpArea:     body.SuperBuiltUpArea,
		PricePerSqft:         body.PricePerSqft,
		DiscountPricePerSqft: body.DiscountPricePerSqft,
		ClearDiscount:        body.ClearDiscount,
		ImageURL:             body.ImageURL,
	})
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Unit updated", unit, nil)
}
