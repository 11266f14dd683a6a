package grouping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	urls   map[string]string
	failOn string
	calls  int
}

func (s *stubUploader) UploadImage(_ context.Context, path string) (string, error) {
	s.calls++
	if path == s.failOn {
		return "", errors.New("upstream rejected file")
	}
	if url, ok := s.urls[path]; ok {
		return url, nil
	}
	return "https://cdn.example.com/" + path, nil
}

// Commercial scenario: total_units=3, columns=2, 20x30 frontage at 4000/sqft
// compiles to a 2-row block of 3 units, each area 600 priced 2,400,000.
func TestCompile_CommercialBlock(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeCommercial)
	require.NoError(t, s.UpdateConfigField(TypeCommercial, "total_units", "3"))
	require.NoError(t, s.UpdateConfigField(TypeCommercial, "layout_columns", "2"))
	require.NoError(t, s.UpdateConfigField(TypeCommercial, "plot_size_width", "20"))
	require.NoError(t, s.UpdateConfigField(TypeCommercial, "plot_size_depth", "30"))

	towers := Compile(context.Background(), s, ProjectContext{RegularRate: 4000}, nil)
	require.Len(t, towers, 1)

	block := towers[0]
	assert.Equal(t, "Commercial Block", block.Name)
	require.NotNil(t, block.LayoutRows)
	assert.Equal(t, 2, *block.LayoutRows)
	require.Len(t, block.Units, 3)
	for i, u := range block.Units {
		assert.Equal(t, 600.0, u.Area)
		assert.Equal(t, 2400000.0, u.Price)
		assert.Equal(t, "available", u.Status)
		assert.Equal(t, []string{"C-1", "C-2", "C-3"}[i], u.UnitNumber)
	}
}

// The commercial tower is always first in the compiled array regardless of
// the order types were selected.
func TestCompile_CommercialAlwaysFirst(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "floors", "1"))
	require.NoError(t, s.PopulateTower(TypeApartment, 0, StandardDefaults(), ProjectContext{}))
	s.SelectType(TypeCommercial)
	require.NoError(t, s.UpdateConfigField(TypeCommercial, "total_units", "2"))

	towers := Compile(context.Background(), s, ProjectContext{RegularRate: 1000}, nil)
	require.Len(t, towers, 2)
	assert.Equal(t, TypeCommercial, towers[0].PropertyType)
	assert.Equal(t, TypeApartment, towers[1].PropertyType)
}

// Generic "Flat" unit types resolve to the canonical label for the type, and
// floors flatten in ascending order.
func TestCompile_FlattensFloorsInOrder(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "floors", "2"))
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "unitsPerFloor", "1"))
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "hasBasement", "true"))
	defaults := StandardDefaults()
	defaults.UnitType = "Flat"
	require.NoError(t, s.PopulateTower(TypeApartment, 0, defaults, ProjectContext{}))

	towers := Compile(context.Background(), s, ProjectContext{}, nil)
	require.Len(t, towers, 1)
	units := towers[0].Units
	require.Len(t, units, 3)
	assert.Equal(t, -1, units[0].FloorNumber)
	assert.Equal(t, 1, units[1].FloorNumber)
	assert.Equal(t, 2, units[2].FloorNumber)
	assert.Equal(t, "Apartment", units[0].UnitType)
}

// A single unit's image-upload failure is degraded to its previous URL and
// never aborts compilation.
func TestCompile_UploadFailureIsIsolated(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeApartment)
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "floors", "1"))
	require.NoError(t, s.UpdateTowerField(TypeApartment, 0, "unitsPerFloor", "2"))
	require.NoError(t, s.PopulateTower(TypeApartment, 0, StandardDefaults(), ProjectContext{}))

	bad, good, prev := "bad.jpg", "good.jpg", "https://cdn.example.com/previous.jpg"
	_, err := s.UpdateUnit(TypeApartment, 0, 1, 0, UnitPatch{ImagePath: &bad, ImageURL: &prev})
	require.NoError(t, err)
	_, err = s.UpdateUnit(TypeApartment, 0, 1, 1, UnitPatch{ImagePath: &good})
	require.NoError(t, err)

	up := &stubUploader{failOn: "bad.jpg"}
	towers := Compile(context.Background(), s, ProjectContext{}, up)
	require.Len(t, towers, 1)
	units := towers[0].Units
	require.Len(t, units, 2)

	require.NotNil(t, units[0].ImageURL)
	assert.Equal(t, prev, *units[0].ImageURL, "failed upload falls back to previous URL")
	require.NotNil(t, units[1].ImageURL)
	assert.Equal(t, "https://cdn.example.com/good.jpg", *units[1].ImageURL)
	assert.Equal(t, 2, up.calls)
}

// Bungalow towers with zero floors compile as single-floor blocks.
func TestCompile_BungalowFloorFallback(t *testing.T) {
	s := NewStore()
	s.SelectType(TypeTwinVilla)
	require.NoError(t, s.UpdateTowerField(TypeTwinVilla, 0, "total_bungalows", "2"))
	require.NoError(t, s.PopulateTower(TypeTwinVilla, 0, StandardDefaults(), ProjectContext{}))

	towers := Compile(context.Background(), s, ProjectContext{}, nil)
	require.Len(t, towers, 1)
	assert.Equal(t, 1, towers[0].TotalFloors)
	assert.Equal(t, "TV-1", towers[0].Units[0].UnitNumber)
}
