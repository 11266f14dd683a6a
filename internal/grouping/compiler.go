package grouping

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Uploader is the media collaborator used for per-unit images during
// compilation.
type Uploader interface {
	UploadImage(ctx context.Context, path string) (string, error)
}

// CompiledUnit is the persisted unit shape emitted on submission. Transient
// fields (local file paths, previews) are stripped.
type CompiledUnit struct {
	UnitNumber           string   `json:"unit_number"`
	UnitType             string   `json:"unit_type"`
	FloorNumber          int      `json:"floor_number"`
	Area                 float64  `json:"area"`
	CarpetArea           float64  `json:"carpet_area"`
	SuperBuiltUpArea     float64  `json:"super_built_up_area"`
	PricePerSqft         float64  `json:"price_per_sqft"`
	DiscountPricePerSqft *float64 `json:"discount_price_per_sqft"`
	Price                float64  `json:"price"`
	PlotWidth            *float64 `json:"plot_width"`
	PlotDepth            *float64 `json:"plot_depth"`
	ImageURL             *string  `json:"unit_image_url"`
	Status               string   `json:"status"`
}

// CompiledTower is one persisted tower with its flattened unit list.
type CompiledTower struct {
	Name          string         `json:"tower_name"`
	PropertyType  string         `json:"property_type"`
	TotalFloors   int            `json:"total_floors"`
	LayoutColumns *int           `json:"layout_columns"`
	LayoutRows    *int           `json:"layout_rows"`
	Units         []CompiledUnit `json:"units"`
}

// Compile flattens the wizard state into the ordered tower list for the
// atomic create. The commercial block, if selected, is always compiled first
// regardless of selection order; all other types follow in the order they
// were selected. A single unit's image-upload failure is logged and degraded
// (previous URL or none), never fatal to the submission.
func Compile(ctx context.Context, s *Store, proj ProjectContext, up Uploader) []CompiledTower {
	var out []CompiledTower

	selected := s.SelectedTypes()
	for _, typ := range selected {
		if typ == TypeCommercial {
			out = append(out, compileCommercial(s, proj))
			break
		}
	}

	for _, typ := range selected {
		if typ == TypeCommercial {
			continue
		}
		for idx, tower := range s.Towers(typ) {
			out = append(out, compileTower(ctx, s, typ, idx, tower, up))
		}
	}
	return out
}

// compileCommercial synthesizes the commercial block procedurally: there is
// no per-unit customization path for commercial, only a count and a grid.
func compileCommercial(s *Store, proj ProjectContext) CompiledTower {
	cfg := TypeConfig{CommercialFloorCount: 1, LayoutColumns: 1}
	if c := s.Config(TypeCommercial); c != nil {
		cfg = *c
	}
	cols := cfg.LayoutColumns
	if cols < 1 {
		cols = 1
	}
	floors := cfg.CommercialFloorCount
	if floors < 1 {
		floors = 1
	}
	unitArea := cfg.PlotSizeWidth * cfg.PlotSizeDepth

	units := make([]CompiledUnit, 0, cfg.TotalUnits)
	for i := 1; i <= cfg.TotalUnits; i++ {
		u := CompiledUnit{
			UnitNumber:   fmt.Sprintf("C-%d", i),
			UnitType:     "Commercial",
			FloorNumber:  0,
			Area:         unitArea,
			Price:        unitArea * proj.RegularRate,
			PricePerSqft: proj.RegularRate,
			Status:       "available",
		}
		if cfg.PlotSizeWidth > 0 {
			w := cfg.PlotSizeWidth
			u.PlotWidth = &w
		}
		if cfg.PlotSizeDepth > 0 {
			d := cfg.PlotSizeDepth
			u.PlotDepth = &d
		}
		units = append(units, u)
	}

	rows := int(math.Ceil(float64(cfg.TotalUnits) / float64(cols)))
	return CompiledTower{
		Name:          "Commercial Block",
		PropertyType:  TypeCommercial,
		TotalFloors:   floors,
		LayoutColumns: &cols,
		LayoutRows:    &rows,
		Units:         units,
	}
}

func compileTower(ctx context.Context, s *Store, typ string, idx int, tower *TowerConfig, up Uploader) CompiledTower {
	var units []CompiledUnit
	for _, floor := range s.FloorNumbers(typ, idx) {
		for _, u := range s.UnitsOn(typ, idx, floor) {
			units = append(units, compileUnit(ctx, typ, floor, u, up))
		}
	}

	name := tower.Name
	if name == "" {
		name = fmt.Sprintf("%s Block %d", capitalize(typ), idx+1)
	}
	totalFloors := tower.Floors
	if totalFloors == 0 && (typ == TypeBungalow || typ == TypeTwinVilla || typ == TypePlot) {
		totalFloors = 1
	}

	ct := CompiledTower{
		Name:         name,
		PropertyType: typ,
		TotalFloors:  totalFloors,
		Units:        units,
	}
	if tower.LayoutColumns > 0 {
		c := tower.LayoutColumns
		ct.LayoutColumns = &c
	}
	if tower.LayoutRows > 0 {
		r := tower.LayoutRows
		ct.LayoutRows = &r
	}
	return ct
}

func compileUnit(ctx context.Context, typ string, floor int, u *UnitDraft, up Uploader) CompiledUnit {
	imageURL := u.ImageURL
	if u.ImagePath != "" && up != nil {
		url, err := up.UploadImage(ctx, u.ImagePath)
		if err != nil {
			log.Error().Err(err).Str("unit", u.UnitNumber).Msg("unit image upload failed")
		} else {
			imageURL = url
		}
	}

	unitType := u.UnitType
	if unitType == "" || unitType == "Flat" {
		unitType = CanonicalUnitType(typ)
	}

	out := CompiledUnit{
		UnitNumber:           u.UnitNumber,
		UnitType:             unitType,
		FloorNumber:          floor,
		Area:                 u.Area,
		CarpetArea:           u.CarpetArea,
		SuperBuiltUpArea:     u.SuperBuiltUpArea,
		PricePerSqft:         u.PricePerSqft,
		DiscountPricePerSqft: u.DiscountPricePerSqft,
		Price:                u.Price,
		Status:               "available",
	}
	if u.Plot != nil {
		if u.Plot.Width > 0 {
			w := u.Plot.Width
			out.PlotWidth = &w
		}
		if u.Plot.Depth > 0 {
			d := u.Plot.Depth
			out.PlotDepth = &d
		}
	}
	if imageURL != "" {
		out.ImageURL = &imageURL
	}
	return out
}
