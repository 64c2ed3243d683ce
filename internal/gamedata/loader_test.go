package gamedata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myron-alexander/srcalc/internal/domain"
)

func testPaths() Paths {
	return DefaultPaths("testdata")
}

func TestLoader_Load(t *testing.T) {
	db, err := NewLoader().Load(testPaths())
	require.NoError(t, err)

	// Names come back lowercased regardless of how the CSV spells them.
	assert.Equal(t, []string{"calcium powder", "glass"}, db.ItemNames())

	recipe, err := db.RecipeFor("glass")
	require.NoError(t, err)
	assert.Equal(t, "furnace", recipe.Output.Machine)
	assert.InDelta(t, 20.0, recipe.Output.ItemsPerMin, 1e-9)
	require.Len(t, recipe.Inputs, 2)
	assert.Equal(t, "calcium powder", recipe.Inputs[0].Input)
	assert.InDelta(t, 40.0, recipe.Inputs[0].RequiredPerMin, 1e-9)

	assert.True(t, db.IsRaw("calcium ore"))
	assert.False(t, db.IsRaw("glass"))

	normal, err := db.RawFor("calcium ore", VariantNormal)
	require.NoError(t, err)
	assert.InDelta(t, 34.285714, normal.ItemsPerMin, 1e-6)

	pure, err := db.RawFor("calcium ore", "pure")
	require.NoError(t, err)
	assert.InDelta(t, 68.571429, pure.ItemsPerMin, 1e-6)

	b, err := db.BuildingFor("helium-3 extractor")
	require.NoError(t, err)
	assert.Equal(t, 6, b.Heat)
	assert.Equal(t, MaterialQuartz, b.MaterialType)
	assert.Equal(t, 40, b.Cost)

	ipm, err := db.OneMachineIPM("glass")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, ipm, 1e-9)
}

func TestLoader_MissingFile(t *testing.T) {
	paths := testPaths()
	paths.Items = filepath.Join("testdata", "does_not_exist.csv")

	_, err := NewLoader().Load(paths)
	assert.Error(t, err)
}

func TestLoader_MalformedRate(t *testing.T) {
	paths := testPaths()
	paths.Items = filepath.Join("testdata", "bad_items_malformed_rate.csv")

	_, err := NewLoader().Load(paths)
	require.Error(t, err)
	// The row number in the error points at the offending line, header included.
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoader_InputForUnknownItem(t *testing.T) {
	paths := testPaths()
	paths.Inputs = filepath.Join("testdata", "bad_input_unknown_item.csv")

	_, err := NewLoader().Load(paths)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestLoader_BuildingWithTwoCostCategories(t *testing.T) {
	paths := testPaths()
	paths.Buildings = filepath.Join("testdata", "bad_building_two_costs.csv")

	_, err := NewLoader().Load(paths)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
