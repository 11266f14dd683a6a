package grouping

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Store errors returned by mutators.
var (
	ErrTypeNotSelected = errors.New("Property type not selected")
	ErrTowerNotFound   = errors.New("Tower not found")
	ErrUnitNotFound    = errors.New("Unit not found")
)

// Store holds the per-type wizard configuration: layout parameters, tower
// rows and unit drafts. Units live in a normalized arena keyed by
// (type, tower index, floor, position) and are mutated by key lookup, never
// by structural cloning.
type Store struct {
	order   []string
	configs map[string]*TypeConfig
	towers  map[string][]*TowerConfig
	units   map[unitKey]*UnitDraft
	counts  map[floorKey]int
}

// NewStore returns an empty per-type configuration store.
func NewStore() *Store {
	return &Store{
		configs: make(map[string]*TypeConfig),
		towers:  make(map[string][]*TowerConfig),
		units:   make(map[unitKey]*UnitDraft),
		counts:  make(map[floorKey]int),
	}
}

// SelectType initializes a default config and a single default tower for the
// type. Re-selecting a type with existing data is a no-op, preserving work.
func (s *Store) SelectType(typ string) {
	if _, ok := s.configs[typ]; ok {
		return
	}
	cfg := &TypeConfig{
		LayoutColumns:        1,
		LayoutRows:           1,
		PlotSizeWidth:        30,
		PlotSizeDepth:        40,
		RoadWidth:            60,
		ParkingType:          "Front",
		CommercialFloorCount: 1,
	}
	switch typ {
	case TypeCommercial:
		cfg.LayoutColumns = 5
	case TypePlot:
		cfg.LayoutColumns = 4
		cfg.LayoutRows = 5
	}
	s.configs[typ] = cfg

	tower := &TowerConfig{
		Name:          fmt.Sprintf("%s 1", ParentLabel(typ)),
		UnitsPerFloor: 4,
		LayoutColumns: 1,
		LayoutRows:    1,
	}
	switch typ {
	case TypeApartment:
		tower.Floors = 10
	case TypePlot:
		tower.LayoutColumns = 4
		tower.LayoutRows = 5
	case TypeBungalow, TypeTwinVilla:
		tower.TotalBungalows = 10
	}
	s.towers[typ] = []*TowerConfig{tower}
	s.order = append(s.order, typ)
}

// DeselectType removes the type's config, towers and units in one operation.
// There is no undo and no resurrection on re-select.
func (s *Store) DeselectType(typ string) {
	delete(s.configs, typ)
	delete(s.towers, typ)
	for k := range s.units {
		if k.Type == typ {
			delete(s.units, k)
		}
	}
	for k := range s.counts {
		if k.Type == typ {
			delete(s.counts, k)
		}
	}
	for i, t := range s.order {
		if t == typ {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SelectedTypes returns the selected property types in selection order.
func (s *Store) SelectedTypes() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Config returns the type's layout configuration, or nil if not selected.
func (s *Store) Config(typ string) *TypeConfig {
	return s.configs[typ]
}

// Towers returns the tower rows for the type.
func (s *Store) Towers(typ string) []*TowerConfig {
	return s.towers[typ]
}

// AddTower appends a tower row named with the next letter suffix.
func (s *Store) AddTower(typ string) error {
	if _, ok := s.configs[typ]; !ok {
		return ErrTypeNotSelected
	}
	n := len(s.towers[typ])
	s.towers[typ] = append(s.towers[typ], &TowerConfig{
		Name:          fmt.Sprintf("%s %c", ParentLabel(typ), rune('A'+n)),
		Floors:        10,
		UnitsPerFloor: 4,
	})
	return nil
}

// RemoveTower deletes a tower row and its unit sub-map. Units of towers after
// the removed index are re-keyed so positions stay aligned with the rows.
func (s *Store) RemoveTower(typ string, index int) error {
	towers := s.towers[typ]
	if index < 0 || index >= len(towers) {
		return ErrTowerNotFound
	}
	s.towers[typ] = append(towers[:index], towers[index+1:]...)

	moved := make(map[unitKey]*UnitDraft)
	for k, u := range s.units {
		if k.Type != typ || k.Tower < index {
			continue
		}
		delete(s.units, k)
		if k.Tower > index {
			k.Tower--
			moved[k] = u
		}
	}
	for k, u := range moved {
		s.units[k] = u
	}

	movedCounts := make(map[floorKey]int)
	for k, n := range s.counts {
		if k.Type != typ || k.Tower < index {
			continue
		}
		delete(s.counts, k)
		if k.Tower > index {
			k.Tower--
			movedCounts[k] = n
		}
	}
	for k, n := range movedCounts {
		s.counts[k] = n
	}
	return nil
}

// UpdateTowerField applies a single field edit to a tower row. Numeric fields
// are parsed as integers (empty clears to zero); booleans accept "true"; all
// other fields are stored verbatim.
func (s *Store) UpdateTowerField(typ string, index int, field, value string) error {
	towers := s.towers[typ]
	if index < 0 || index >= len(towers) {
		return ErrTowerNotFound
	}
	t := towers[index]
	switch field {
	case "floors", "unitsPerFloor", "total_bungalows", "layout_columns", "layout_rows":
		n := 0
		if value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("Invalid value for %s", field)
			}
			n = parsed
		}
		switch field {
		case "floors":
			t.Floors = n
		case "unitsPerFloor":
			t.UnitsPerFloor = n
		case "total_bungalows":
			t.TotalBungalows = n
		case "layout_columns":
			t.LayoutColumns = n
		case "layout_rows":
			t.LayoutRows = n
		}
	case "hasBasement":
		t.HasBasement = value == "true"
	case "hasGroundFloor":
		t.HasGroundFloor = value == "true"
	case "name":
		t.Name = value
	case "bungalow_type":
		t.BungalowType = value
	default:
		return fmt.Errorf("Unknown tower field: %s", field)
	}
	return nil
}

// UpdateConfigField applies a single field edit to the type's layout config.
func (s *Store) UpdateConfigField(typ string, field, value string) error {
	cfg, ok := s.configs[typ]
	if !ok {
		return ErrTypeNotSelected
	}
	parseInt := func() int {
		n, _ := strconv.Atoi(value)
		return n
	}
	parseFloat := func() float64 {
		f, _ := strconv.ParseFloat(value, 64)
		return f
	}
	switch field {
	case "layout_columns":
		cfg.LayoutColumns = parseInt()
	case "layout_rows":
		cfg.LayoutRows = parseInt()
	case "total_units":
		cfg.TotalUnits = parseInt()
	case "commercial_floor_count":
		cfg.CommercialFloorCount = parseInt()
	case "plot_size_width":
		cfg.PlotSizeWidth = parseFloat()
	case "plot_size_depth":
		cfg.PlotSizeDepth = parseFloat()
	case "road_width":
		cfg.RoadWidth = parseFloat()
	case "plot_gap":
		cfg.PlotGap = parseFloat()
	case "parking_type":
		cfg.ParkingType = value
	default:
		return fmt.Errorf("Unknown config field: %s", field)
	}
	return nil
}

// AddUnit appends one default unit to a floor via the builder.
func (s *Store) AddUnit(typ string, towerIdx, floor int, defaults UnitDefaults) (*UnitDraft, error) {
	if towerIdx < 0 || towerIdx >= len(s.towers[typ]) {
		return nil, ErrTowerNotFound
	}
	fk := floorKey{Type: typ, Tower: towerIdx, Floor: floor}
	pos := s.counts[fk]
	u := BuildUnit(typ, pos, defaults)
	s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: pos}] = u
	s.counts[fk] = pos + 1
	return u, nil
}

// RemoveUnit deletes a unit and shifts later positions down.
func (s *Store) RemoveUnit(typ string, towerIdx, floor, pos int) error {
	fk := floorKey{Type: typ, Tower: towerIdx, Floor: floor}
	n := s.counts[fk]
	if pos < 0 || pos >= n {
		return ErrUnitNotFound
	}
	for i := pos; i < n-1; i++ {
		s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: i}] =
			s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: i + 1}]
	}
	delete(s.units, unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: n - 1})
	if n-1 == 0 {
		delete(s.counts, fk)
	} else {
		s.counts[fk] = n - 1
	}
	return nil
}

// Unit returns the draft at the given coordinates, or nil.
func (s *Store) Unit(typ string, towerIdx, floor, pos int) *UnitDraft {
	return s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: pos}]
}

// UnitsOn returns the ordered unit list for a floor.
func (s *Store) UnitsOn(typ string, towerIdx, floor int) []*UnitDraft {
	n := s.counts[floorKey{Type: typ, Tower: towerIdx, Floor: floor}]
	out := make([]*UnitDraft, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: i}])
	}
	return out
}

// FloorNumbers returns the floors of a tower in ascending order. Iteration
// over floors is always done through this to keep compile output stable.
func (s *Store) FloorNumbers(typ string, towerIdx int) []int {
	seen := make(map[int]bool)
	for k := range s.counts {
		if k.Type == typ && k.Tower == towerIdx {
			seen[k.Floor] = true
		}
	}
	floors := make([]int, 0, len(seen))
	for f := range seen {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

// defaultsDriven reports whether the type's generated units derive their
// metrics from the shared defaults template. Plots derive from sector layout
// and bungalow-style units seed from fixed metrics, so both are exempt.
func defaultsDriven(typ string) bool {
	switch typ {
	case TypePlot, TypeBungalow, TypeTwinVilla:
		return false
	}
	return true
}

// ReapplyDefaults re-derives every defaults-driven unit still flagged
// non-custom from the template. Custom units keep their frozen values.
func (s *Store) ReapplyDefaults(defaults UnitDefaults) {
	for k, u := range s.units {
		if u.IsCustom || !defaultsDriven(k.Type) {
			continue
		}
		u.Area = defaults.SBUA
		u.SuperBuiltUpArea = defaults.SBUA
		u.CarpetArea = defaults.CarpetArea
		u.PricePerSqft = defaults.BaseRate
		if defaults.DiscountRate > 0 {
			rate := defaults.DiscountRate
			u.DiscountPricePerSqft = &rate
		} else {
			u.DiscountPricePerSqft = nil
		}
		u.Recompute()
	}
}

// UpdateUnit applies a patch to a unit, re-derives area and price, and marks
// the unit custom. A unit cannot be edited without becoming custom.
func (s *Store) UpdateUnit(typ string, towerIdx, floor, pos int, patch UnitPatch) (*UnitDraft, error) {
	u := s.Unit(typ, towerIdx, floor, pos)
	if u == nil {
		return nil, ErrUnitNotFound
	}
	patch.applyTo(u)
	u.IsCustom = true
	u.Recompute()
	return u, nil
}

// UnitPatch is a batch of field assignments; nil fields are left untouched.
// ClearDiscount removes the discount override entirely (distinct from zero).
type UnitPatch struct {
	UnitNumber           *string  `json:"unit_number"`
	UnitType             *string  `json:"unit_type"`
	Area                 *float64 `json:"area"`
	CarpetArea           *float64 `json:"carpet_area"`
	SuperBuiltUpArea     *float64 `json:"super_built_up_area"`
	PricePerSqft         *float64 `json:"price_per_sqft"`
	DiscountPricePerSqft *float64 `json:"discount_price_per_sqft"`
	ClearDiscount        bool     `json:"clear_discount"`
	PlotWidth            *float64 `json:"plot_width"`
	PlotDepth            *float64 `json:"plot_depth"`
	ImagePath            *string  `json:"image_path"`
	ImageURL             *string  `json:"image_url"`
}

func (p UnitPatch) applyTo(u *UnitDraft) {
	if p.UnitNumber != nil {
		u.UnitNumber = *p.UnitNumber
	}
	if p.UnitType != nil {
		u.UnitType = *p.UnitType
	}
	if p.Area != nil {
		u.Area = *p.Area
	}
	if p.CarpetArea != nil {
		u.CarpetArea = *p.CarpetArea
	}
	if p.SuperBuiltUpArea != nil {
		u.SuperBuiltUpArea = *p.SuperBuiltUpArea
	}
	if p.PricePerSqft != nil {
		u.PricePerSqft = *p.PricePerSqft
	}
	if p.ClearDiscount {
		u.DiscountPricePerSqft = nil
	} else if p.DiscountPricePerSqft != nil {
		v := *p.DiscountPricePerSqft
		u.DiscountPricePerSqft = &v
	}
	if p.PlotWidth != nil || p.PlotDepth != nil {
		if u.Plot == nil {
			u.Plot = &PlotPayload{}
		}
		if p.PlotWidth != nil {
			u.Plot.Width = *p.PlotWidth
		}
		if p.PlotDepth != nil {
			u.Plot.Depth = *p.PlotDepth
		}
	}
	if p.ImagePath != nil {
		u.ImagePath = *p.ImagePath
	}
	if p.ImageURL != nil {
		u.ImageURL = *p.ImageURL
	}
}
