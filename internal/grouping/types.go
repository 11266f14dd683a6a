package grouping

import "fmt"

// Property types selectable in the wizard.
const (
	TypeApartment  = "apartment"
	TypeBungalow   = "bungalow"
	TypeTwinVilla  = "twin_villa"
	TypePlot       = "plot"
	TypeMixedUse   = "mixed_use"
	TypeCommercial = "commercial"
)

// UnitDefaults is the shared template applied to every newly generated
// non-custom unit. It is passed explicitly into the builder and the
// populate/reset operations; there is no package-level default state.
type UnitDefaults struct {
	UnitType     string  `json:"unit_type"`
	SBUA         float64 `json:"sbua"`
	CarpetArea   float64 `json:"carpet_area"`
	BaseRate     float64 `json:"base_rate"`
	DiscountRate float64 `json:"discount_rate"` // 0 means no discount
}

// StandardDefaults returns the template the wizard starts with.
func StandardDefaults() UnitDefaults {
	return UnitDefaults{
		UnitType:     "Flat",
		SBUA:         1500,
		CarpetArea:   1200,
		BaseRate:     5000,
		DiscountRate: 4500,
	}
}

// PlotPayload carries frontage-and-depth metrics for plot units.
type PlotPayload struct {
	Width float64 `json:"plot_width"`
	Depth float64 `json:"plot_depth"`
}

// CommercialPayload carries shop frontage metrics for commercial units.
type CommercialPayload struct {
	Frontage float64 `json:"frontage"`
	Depth    float64 `json:"depth"`
}

// UnitDraft is an in-progress unit. The base fields are common to all
// property types; type-specific metrics live in the payload selected by the
// unit's type tag (Plot for plot units, Commercial for shops).
type UnitDraft struct {
	UnitNumber           string             `json:"unit_number"`
	FlatLabel            string             `json:"flat_label,omitempty"`
	UnitType             string             `json:"unit_type"`
	Area                 float64            `json:"area"`
	CarpetArea           float64            `json:"carpet_area"`
	SuperBuiltUpArea     float64            `json:"super_built_up_area"`
	PricePerSqft         float64            `json:"price_per_sqft"`
	DiscountPricePerSqft *float64           `json:"discount_price_per_sqft"`
	Price                float64            `json:"price"`
	IsCustom             bool               `json:"isCustom"`
	ImagePath            string             `json:"-"` // pending local upload, stripped at compile
	ImageURL             string             `json:"unit_image_url,omitempty"`
	Plot                 *PlotPayload       `json:"plot,omitempty"`
	Commercial           *CommercialPayload `json:"commercial,omitempty"`
}

// Recompute applies the derived-field rules after any edit: a plot unit's
// area is overridden by width×depth whenever both are positive, then
// price = effective rate × effective area. Bungalow-style units fall back to
// super built-up area when no area is set.
func (u *UnitDraft) Recompute() {
	if u.Plot != nil && u.Plot.Width > 0 && u.Plot.Depth > 0 {
		u.Area = u.Plot.Width * u.Plot.Depth
	}
	area := u.Area
	if area == 0 {
		area = u.SuperBuiltUpArea
	}
	rate := u.PricePerSqft
	if u.DiscountPricePerSqft != nil {
		rate = *u.DiscountPricePerSqft
	}
	u.Price = area * rate
}

// Clone returns a deep copy of the draft, customization flag included.
func (u *UnitDraft) Clone() *UnitDraft {
	cp := *u
	if u.DiscountPricePerSqft != nil {
		v := *u.DiscountPricePerSqft
		cp.DiscountPricePerSqft = &v
	}
	if u.Plot != nil {
		p := *u.Plot
		cp.Plot = &p
	}
	if u.Commercial != nil {
		c := *u.Commercial
		cp.Commercial = &c
	}
	return &cp
}

// TypeConfig holds per-type layout parameters, created when a type is first
// selected in step 3.
type TypeConfig struct {
	LayoutColumns        int     `json:"layout_columns"`
	LayoutRows           int     `json:"layout_rows"`
	PlotSizeWidth        float64 `json:"plot_size_width"`
	PlotSizeDepth        float64 `json:"plot_size_depth"`
	RoadWidth            float64 `json:"road_width"`
	PlotGap              float64 `json:"plot_gap"`
	ParkingType          string  `json:"parking_type"`
	CommercialFloorCount int     `json:"commercial_floor_count"`
	TotalUnits           int     `json:"total_units"` // commercial only
}

// TowerConfig is one tower/block/sector row in step 3.
type TowerConfig struct {
	Name           string `json:"name"`
	Floors         int    `json:"floors"`
	UnitsPerFloor  int    `json:"unitsPerFloor"`
	LayoutColumns  int    `json:"layout_columns"`
	LayoutRows     int    `json:"layout_rows"`
	TotalBungalows int    `json:"total_bungalows"`
	HasBasement    bool   `json:"hasBasement"`
	HasGroundFloor bool   `json:"hasGroundFloor"`
	BungalowType   string `json:"bungalow_type"`
}

// ParentLabel returns the grouping noun shown for a property type
// (Tower/Block/Sector/Building).
func ParentLabel(typ string) string {
	switch typ {
	case TypeApartment:
		return "Tower"
	case TypeBungalow, TypeTwinVilla, TypeCommercial:
		return "Block"
	case TypePlot:
		return "Sector"
	case TypeMixedUse:
		return "Building"
	default:
		return "Group"
	}
}

// CanonicalUnitType maps a property type to the display unit type used when a
// unit is still generic at compile time.
func CanonicalUnitType(typ string) string {
	switch typ {
	case TypeApartment:
		return "Apartment"
	case TypePlot:
		return "Plot"
	case TypeCommercial:
		return "Commercial"
	case TypeTwinVilla:
		return "Twin Villa"
	default:
		return "Bungalow"
	}
}

// unitKey addresses a unit draft in the store arena.
type unitKey struct {
	Type  string
	Tower int
	Floor int
	Pos   int
}

// floorKey addresses one floor's unit list.
type floorKey struct {
	Type  string
	Tower int
	Floor int
}

func (k unitKey) String() string {
	return fmt.Sprintf("%s/%d/%d/%d", k.Type, k.Tower, k.Floor, k.Pos)
}
