package grouping

import "fmt"

// UnitLabel generates the human-readable unit number for position pos
// (0-based) on a floor: letter suffixes for flats, "Shop N" for in-wizard
// commercial units, and type-prefixed sequence numbers otherwise.
func UnitLabel(typ string, pos int) string {
	switch typ {
	case TypeCommercial:
		return fmt.Sprintf("Shop %d", pos+1)
	case TypeBungalow:
		return fmt.Sprintf("B-%d", pos+1)
	case TypeTwinVilla:
		return fmt.Sprintf("TV-%d", pos+1)
	case TypePlot:
		return fmt.Sprintf("P-%d", pos+1)
	default:
		return fmt.Sprintf("Flat %c", rune('A'+pos))
	}
}

// BuildUnit produces one non-custom unit draft for the given property type and
// floor position, copying numeric fields from the supplied defaults. Price is
// derived immediately; the caller inserts the record into the store.
func BuildUnit(typ string, pos int, defaults UnitDefaults) *UnitDraft {
	label := UnitLabel(typ, pos)
	u := &UnitDraft{
		UnitNumber:       label,
		UnitType:         CanonicalUnitType(typ),
		Area:             defaults.SBUA,
		CarpetArea:       defaults.CarpetArea,
		SuperBuiltUpArea: defaults.SBUA,
		PricePerSqft:     defaults.BaseRate,
	}
	if typ == TypeApartment || typ == TypeCommercial {
		u.FlatLabel = label
	}
	if defaults.DiscountRate > 0 {
		rate := defaults.DiscountRate
		u.DiscountPricePerSqft = &rate
	}
	u.Recompute()
	return u
}

// BuildPlotUnit produces one plot draft whose area derives from the sector's
// plot width/depth configuration, falling back to the project's stated area.
func BuildPlotUnit(pos int, cfg TypeConfig, proj ProjectContext) *UnitDraft {
	u := &UnitDraft{
		UnitNumber:   UnitLabel(TypePlot, pos),
		UnitType:     "Plot",
		Area:         proj.Area,
		PricePerSqft: proj.RegularRate,
	}
	if u.Area == 0 {
		u.Area = 1200
	}
	if cfg.PlotSizeWidth > 0 && cfg.PlotSizeDepth > 0 {
		u.Plot = &PlotPayload{Width: cfg.PlotSizeWidth, Depth: cfg.PlotSizeDepth}
	}
	if proj.GroupRate > 0 {
		rate := proj.GroupRate
		u.DiscountPricePerSqft = &rate
	}
	u.Recompute()
	return u
}

// BuildBungalowUnit produces one independently numbered bungalow/twin-villa
// draft. These start from fixed seed metrics rather than the shared defaults
// and are priced by hand in step 4.
func BuildBungalowUnit(typ string, pos int, tower TowerConfig) *UnitDraft {
	unitType := tower.BungalowType
	if unitType == "" {
		unitType = CanonicalUnitType(typ)
	}
	u := &UnitDraft{
		UnitNumber:       UnitLabel(typ, pos),
		UnitType:         unitType,
		Area:             2500,
		SuperBuiltUpArea: 2000,
		CarpetArea:       1500,
	}
	return u
}

// ProjectContext carries the project-level values the generator needs when a
// type-specific figure is absent (plot fallbacks, commercial pricing).
type ProjectContext struct {
	Area        float64
	RegularRate float64
	GroupRate   float64
}
