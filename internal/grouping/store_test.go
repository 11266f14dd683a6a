package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Any edit re-derives price from the effective rate and marks the unit custom.
func TestUpdateUnit_PriceInvariant(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)

	defaults := UnitDefaults{SBUA: 1000, CarpetArea: 800, BaseRate: 5000}
	_, err := s.AddUnit(TypeApartment, 0, 1, defaults)
	require.NoError(t, err)

	area := 1500.0
	disc := 4500.0
	u, err := s.UpdateUnit(TypeApartment, 0, 1, 0, UnitPatch{Area: &area, DiscountPricePerSqft: &disc})
	require.NoError(t, err)

	assert.Equal(t, 6750000.0, u.Price)
	assert.True(t, u.IsCustom)

	// Clearing the discount falls back to the regular rate.
	u, err = s.UpdateUnit(TypeApartment, 0, 1, 0, UnitPatch{ClearDiscount: true})
	require.NoError(t, err)
	assert.Equal(t, 7500000.0, u.Price)
}

// Plot area is recomputed from width×depth whenever both are positive,
// overriding any directly-set area. This is a derived-field rule, not an
// override the admin can defeat.
func TestUpdateUnit_PlotAreaDerivation(t *testing.T) {
	s := NewStore()
	s.SelectType(TypePlot)
	require.NoError(t, s.PopulateTower(TypePlot, 0, StandardDefaults(), ProjectContext{RegularRate: 1000}))

	area := 9999.0
	u, err := s.UpdateUnit(TypePlot, 0, 0, 0, UnitPatch{Area: &area})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, u.Area, "30x40 config must win over the stored area")

	w, d := 30.0, 40.0
	u, err = s.UpdateUnit(TypePlot, 0, 0, 0, UnitPatch{PlotWidth: &w, PlotDepth: &d})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, u.Area)
}

// Deselect followed by select yields the default single-tower configuration,
// never the previously deleted data.
func TestDeselectType_NoResurrection(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)
	require.NoError(t, s.AddTower(TypeApartment))
	require.NoError(t, s.AddTower(TypeApartment))
	require.NoError(t, s.PopulateTower(TypeApartment, 0, StandardDefaults(), ProjectContext{}))
	require.Len(t, s.Towers(TypeApartment), 3)

	s.DeselectType(TypeApartment)
	assert.Nil(t, s.Config(TypeApartment))
	assert.Empty(t, s.Towers(TypeApartment))
	assert.Empty(t, s.SelectedTypes())

	s.SelectType(TypeApartment)
	require.Len(t, s.Towers(TypeApartment), 1)
	assert.Empty(t, s.UnitsOn(TypeApartment, 0, 1))
}

// Re-selecting a type with existing data is a no-op.
func TestSelectType_Idempotent(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeBungalow)
	require.NoError(t, s.UpdateTowerField(TypeBungalow, 0, "total_bungalows", "25"))

	s.SelectType(TypeBungalow)
	assert.Equal(t, 25, s.Towers(TypeBungalow)[0].TotalBungalows)
	assert.Equal(t, []string{TypeBungalow}, s.SelectedTypes())
}

// Removing a tower drops its units and re-keys the towers after it.
func TestRemoveTower_CascadesAndReindexes(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)
	require.NoError(t, s.AddTower(TypeApartment))

	defaults := StandardDefaults()
	_, err := s.AddUnit(TypeApartment, 0, 1, defaults)
	require.NoError(t, err)
	marker, err := s.AddUnit(TypeApartment, 1, 1, defaults)
	require.NoError(t, err)
	name := "Marker"
	_, err = s.UpdateUnit(TypeApartment, 1, 1, 0, UnitPatch{UnitNumber: &name})
	require.NoError(t, err)

	require.NoError(t, s.RemoveTower(TypeApartment, 0))

	require.Len(t, s.Towers(TypeApartment), 1)
	units := s.UnitsOn(TypeApartment, 0, 1)
	require.Len(t, units, 1)
	assert.Equal(t, "Marker", units[0].UnitNumber)
	assert.Same(t, marker, units[0])
}

// Numeric tower fields parse as integers; empty clears to zero.
func TestUpdateTowerField_NumericParsing(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)

	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "floors", "12"))
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "unitsPerFloor", ""))
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "name", "North Wing"))

	tower := s.Towers(TypeApartment)[0]
	assert.Equal(t, 12, tower.Floors)
	assert.Equal(t, 0, tower.UnitsPerFloor)
	assert.Equal(t, "North Wing", tower.Name)

	assert.Error(t, s.UpdateTowerField(TypeApartment, 0, "floors", "abc"))
	assert.Error(t, s.UpdateTowerField(TypeApartment, 5, "floors", "1"))
}

// Unit labels: letters for flats, Shop N for commercial, prefixes otherwise.
func TestUnitLabels(t *testing.T) {
	assert.Equal(t, "Flat A", UnitLabel(TypeApartment, 0))
	assert.Equal(t, "Flat C", UnitLabel(TypeApartment, 2))
	assert.Equal(t, "Shop 1", UnitLabel(TypeCommercial, 0))
	assert.Equal(t, "B-3", UnitLabel(TypeBungalow, 2))
	assert.Equal(t, "TV-1", UnitLabel(TypeTwinVilla, 0))
	assert.Equal(t, "P-10", UnitLabel(TypePlot, 9))
}
