package wizard

import (
	"strings"

	"badabuilder-backend/internal/grouping"
	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes the draft wizard over HTTP. Every route requires an admin
// session; the draft is keyed by the admin's user id.
type Handlers struct {
	Registry  *Registry
	Persister grouping.Persister
	Uploader  grouping.Uploader
}

var statusMap = map[string]int{
	"No draft in progress":          404,
	"Property type not selected":    400,
	"Tower not found":               404,
	"Unit not found":                404,
	"Current step is incomplete":    400,
	"Please specify Minimum Buyers": 400,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	if strings.HasPrefix(err.Error(), "Unknown") || strings.HasPrefix(err.Error(), "Invalid") {
		return 400
	}
	return 500
}

func adminID(c *fiber.Ctx) (string, bool) {
	id := middleware.ActorID(c)
	if id == uuid.Nil {
		return "", false
	}
	return id.String(), true
}

// run wraps the common pattern: resolve the admin, mutate the draft under the
// registry lock, respond with the fresh snapshot.
func (h *Handlers) run(c *fiber.Ctx, message string, fn func(w *grouping.Wizard) error) error {
	id, ok := adminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var view DraftView
	err := h.Registry.With(id, func(w *grouping.Wizard) error {
		if err := fn(w); err != nil {
			return err
		}
		view = Snapshot(w)
		return nil
	})
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, message, view, nil)
}

// Start POST /api/v1/grouping/wizard/start
func (h *Handlers) Start(c *fiber.Ctx) error {
	id, ok := adminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	h.Registry.Start(id)
	return h.run(c, "Draft started", func(w *grouping.Wizard) error { return nil })
}

// GetDraft GET /api/v1/grouping/wizard/draft
func (h *Handlers) GetDraft(c *fiber.Ctx) error {
	return h.run(c, "Draft fetched", func(w *grouping.Wizard) error { return nil })
}

// projectPatch mirrors ProjectDraft with pointer fields; nil means untouched.
type projectPatch struct {
	Title       *string  `json:"title"`
	Developer   *string  `json:"developer"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	MapAddress  *string  `json:"map_address"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	MinBuyers   *int     `json:"min_buyers"`
	Area        *float64 `json:"area"`
	Possession  *string  `json:"possession"`
	ReraNumber  *string  `json:"rera_number"`

	RegularPricePerSqft    *float64 `json:"regular_price_per_sqft"`
	RegularPricePerSqftMax *float64 `json:"regular_price_per_sqft_max"`
	GroupPricePerSqft      *float64 `json:"group_price_per_sqft"`
	GroupPricePerSqftMax   *float64 `json:"group_price_per_sqft_max"`
	PriceUnit              *string  `json:"price_unit"`
	Currency               *string  `json:"currency"`

	OfferType          *string  `json:"offer_type"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	DiscountLabel      *string  `json:"discount_label"`
}

func (p projectPatch) applyTo(d *grouping.ProjectDraft) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&d.Title, p.Title)
	setStr(&d.Developer, p.Developer)
	setStr(&d.Location, p.Location)
	if p.Latitude != nil {
		d.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		d.Longitude = p.Longitude
	}
	setStr(&d.MapAddress, p.MapAddress)
	setStr(&d.Description, p.Description)
	setStr(&d.Type, p.Type)
	if p.MinBuyers != nil {
		d.MinBuyers = *p.MinBuyers
	}
	setF(&d.Area, p.Area)
	setStr(&d.Possession, p.Possession)
	setStr(&d.ReraNumber, p.ReraNumber)
	setF(&d.RegularPricePerSqft, p.RegularPricePerSqft)
	setF(&d.RegularPricePerSqftMax, p.RegularPricePerSqftMax)
	setF(&d.GroupPricePerSqft, p.GroupPricePerSqft)
	setF(&d.GroupPricePerSqftMax, p.GroupPricePerSqftMax)
	setStr(&d.PriceUnit, p.PriceUnit)
	setStr(&d.Currency, p.Currency)
	setStr(&d.OfferType, p.OfferType)
	setF(&d.DiscountPercentage, p.DiscountPercentage)
	setStr(&d.DiscountLabel, p.DiscountLabel)
}

// UpdateProjectData PATCH /api/v1/grouping/wizard/project-data
func (h *Handlers) UpdateProjectData(c *fiber.Ctx) error {
	var patch projectPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	return h.run(c, "Project data updated", func(w *grouping.Wizard) error {
		patch.applyTo(&w.Project)
		return nil
	})
}

type typeBody struct {
	Type string `json:"type"`
}

// SelectType POST /api/v1/grouping/wizard/select-type
func (h *Handlers) SelectType(c *fiber.Ctx) error {
	var body typeBody
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Type selected", func(w *grouping.Wizard) error {
		w.Store.SelectType(body.Type)
		return nil
	})
}

// DeselectType POST /api/v1/grouping/wizard/deselect-type
func (h *Handlers) DeselectType(c *fiber.Ctx) error {
	var body typeBody
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Type deselected", func(w *grouping.Wizard) error {
		w.Store.DeselectType(body.Type)
		return nil
	})
}

type towerBody struct {
	Type  string `json:"type"`
	Tower int    `json:"tower"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// AddTower POST /api/v1/grouping/wizard/add-tower
func (h *Handlers) AddTower(c *fiber.Ctx) error {
	var body towerBody
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Tower added", func(w *grouping.Wizard) error {
		return w.Store.AddTower(body.Type)
	})
}

// RemoveTower POST /api/v1/grouping/wizard/remove-tower
func (h *Handlers) RemoveTower(c *fiber.Ctx) error {
	var body towerBody
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Tower removed", func(w *grouping.Wizard) error {
		return w.Store.RemoveTower(body.Type, body.Tower)
	})
}

// UpdateTower PATCH /api/v1/grouping/wizard/update-tower — single field edit,
// or a config-level edit when "config" is true.
func (h *Handlers) UpdateTower(c *fiber.Ctx) error {
	var body struct {
		towerBody
		Config bool `json:"config"`
	}
	if err := c.BodyParser(&body); err != nil || body.Type == "" || body.Field == "" {
		return response.Error(c, "type and field are required", 400, nil)
	}
	return h.run(c, "Tower updated", func(w *grouping.Wizard) error {
		if body.Config {
			return w.Store.UpdateConfigField(body.Type, body.Field, body.Value)
		}
		return w.Store.UpdateTowerField(body.Type, body.Tower, body.Field, body.Value)
	})
}

// PopulateTower POST /api/v1/grouping/wizard/populate-tower — regenerates the
// tower from its current layout, discarding all existing units including
// customized ones.
func (h *Handlers) PopulateTower(c *fiber.Ctx) error {
	var body towerBody
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Tower populated", func(w *grouping.Wizard) error {
		return w.Store.PopulateTower(body.Type, body.Tower, w.Defaults, w.Context())
	})
}

// CopyFloor POST /api/v1/grouping/wizard/copy-floor
func (h *Handlers) CopyFloor(c *fiber.Ctx) error {
	var body struct {
		Type  string `json:"type"`
		Tower int    `json:"tower"`
		From  int    `json:"from_floor"`
		To    int    `json:"to_floor"`
	}
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Floor copied", func(w *grouping.Wizard) error {
		return w.Store.CopyFloor(body.Type, body.Tower, body.From, body.To)
	})
}

type unitCoords struct {
	Type  string `json:"type"`
	Tower int    `json:"tower"`
	Floor int    `json:"floor"`
	Pos   int    `json:"pos"`
}

// AddUnit POST /api/v1/grouping/wizard/add-unit
func (h *Handlers) AddUnit(c *fiber.Ctx) error {
	var body unitCoords
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Unit added", func(w *grouping.Wizard) error {
		_, err := w.Store.AddUnit(body.Type, body.Tower, body.Floor, w.Defaults)
		return err
	})
}

// RemoveUnit POST /api/v1/grouping/wizard/remove-unit
func (h *Handlers) RemoveUnit(c *fiber.Ctx) error {
	var body unitCoords
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Unit removed", func(w *grouping.Wizard) error {
		return w.Store.RemoveUnit(body.Type, body.Tower, body.Floor, body.Pos)
	})
}

// UpdateUnit PATCH /api/v1/grouping/wizard/update-unit — applies a patch and
// marks the unit custom; area and price are re-derived server-side.
func (h *Handlers) UpdateUnit(c *fiber.Ctx) error {
	var body struct {
		unitCoords
		Patch grouping.UnitPatch `json:"patch"`
	}
	if err := c.BodyParser(&body); err != nil || body.Type == "" {
		return response.Error(c, "type is required", 400, nil)
	}
	return h.run(c, "Unit updated", func(w *grouping.Wizard) error {
		_, err := w.Store.UpdateUnit(body.Type, body.Tower, body.Floor, body.Pos, body.Patch)
		return err
	})
}

// UpdateDefaults PATCH /api/v1/grouping/wizard/defaults
func (h *Handlers) UpdateDefaults(c *fiber.Ctx) error {
	var body struct {
		UnitType     *string  `json:"unit_type"`
		SBUA         *float64 `json:"sbua"`
		CarpetArea   *float64 `json:"carpet_area"`
		BaseRate     *float64 `json:"base_rate"`
		DiscountRate *float64 `json:"discount_rate"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	return h.run(c, "Defaults updated", func(w *grouping.Wizard) error {
		d := w.Defaults
		if body.UnitType != nil {
			d.UnitType = *body.UnitType
		}
		if body.SBUA != nil {
			d.SBUA = *body.SBUA
		}
		if body.CarpetArea != nil {
			d.CarpetArea = *body.CarpetArea
		}
		if body.BaseRate != nil {
			d.BaseRate = *body.BaseRate
		}
		if body.DiscountRate != nil {
			d.DiscountRate = *body.DiscountRate
		}
		w.UpdateDefaults(d)
		return nil
	})
}

// NextStep POST /api/v1/grouping/wizard/next-step
func (h *Handlers) NextStep(c *fiber.Ctx) error {
	return h.run(c, "Step advanced", func(w *grouping.Wizard) error {
		return w.Next()
	})
}

// PrevStep POST /api/v1/grouping/wizard/prev-step
func (h *Handlers) PrevStep(c *fiber.Ctx) error {
	return h.run(c, "Step moved back", func(w *grouping.Wizard) error {
		w.Prev()
		return nil
	})
}

// Confirm POST /api/v1/grouping/wizard/confirm — compiles and persists the
// project atomically. The draft survives a failed confirm so the admin can
// retry.
func (h *Handlers) Confirm(c *fiber.Ctx) error {
	id, ok := adminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var projectID string
	err := h.Registry.With(id, func(w *grouping.Wizard) error {
		pid, err := w.Confirm(c.Context(), h.Persister, h.Uploader)
		if err != nil {
			return err
		}
		projectID = pid
		return nil
	})
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	h.Registry.Discard(id)
	return response.SuccessCreated(c, "Project created", fiber.Map{"project_id": projectID}, nil)
}
