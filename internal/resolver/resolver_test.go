package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myron-alexander/srcalc/internal/domain"
	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/overrides"
)

// testDatabase builds the recipe set used across the resolver tests:
//
//	glass    <- calcium powder (40/min) + helium-3 (20/min)
//	ceramics <- wolfram powder (30/min) + calcite sheets (20/min)
//
// with the calcium and wolfram chains bottoming out in raw ore.
func testDatabase(t *testing.T) *gamedata.Database {
	t.Helper()

	items := []gamedata.Item{
		{Name: "glass", NumProduced: 2, PeriodSeconds: 6, Machine: "furnace", ItemsPerMin: 20},
		{Name: "calcium powder", NumProduced: 4, PeriodSeconds: 4, Machine: "furnace", ItemsPerMin: 60},
		{Name: "calcium block", NumProduced: 5, PeriodSeconds: 7, Machine: "smelter", ItemsPerMin: 42.857143},
		{Name: "ceramics", NumProduced: 2, PeriodSeconds: 3, Machine: "kiln", ItemsPerMin: 40},
		{Name: "calcite sheets", NumProduced: 3, PeriodSeconds: 3, Machine: "fabricator", ItemsPerMin: 60},
		{Name: "wolfram powder", NumProduced: 3, PeriodSeconds: 4, Machine: "crusher", ItemsPerMin: 45},
		{Name: "wolfram bar", NumProduced: 1, PeriodSeconds: 2, Machine: "smelter", ItemsPerMin: 30},
	}
	inputs := []gamedata.RecipeInput{
		{Item: "glass", Input: "calcium powder", NumRequired: 4, PeriodSeconds: 6, RequiredPerMin: 40},
		{Item: "glass", Input: "helium-3", NumRequired: 2, PeriodSeconds: 6, RequiredPerMin: 20},
		{Item: "calcium powder", Input: "calcium block", NumRequired: 2, PeriodSeconds: 9, RequiredPerMin: 13.333333},
		{Item: "calcium block", Input: "calcium ore", NumRequired: 2, PeriodSeconds: 9, RequiredPerMin: 13.333333},
		{Item: "ceramics", Input: "wolfram powder", NumRequired: 3, PeriodSeconds: 6, RequiredPerMin: 30},
		{Item: "ceramics", Input: "calcite sheets", NumRequired: 1, PeriodSeconds: 3, RequiredPerMin: 20},
		{Item: "calcite sheets", Input: "calcium block", NumRequired: 1, PeriodSeconds: 4, RequiredPerMin: 15},
		{Item: "wolfram powder", Input: "wolfram bar", NumRequired: 1, PeriodSeconds: 3, RequiredPerMin: 20},
		{Item: "wolfram bar", Input: "wolfram ore", NumRequired: 5, PeriodSeconds: 12, RequiredPerMin: 25},
	}
	raws := []gamedata.RawItem{
		{Name: "calcium ore", Variant: "normal", NumProduced: 4, PeriodSeconds: 7, Machine: "ore excavator", ItemsPerMin: 34.285714},
		{Name: "helium-3", Variant: "normal", NumProduced: 20, PeriodSeconds: 5, Machine: "helium-3 extractor", ItemsPerMin: 240},
		{Name: "wolfram ore", Variant: "normal", NumProduced: 5, PeriodSeconds: 5, Machine: "ore excavator", ItemsPerMin: 60},
	}
	buildings := []gamedata.Building{
		{Name: "furnace", Heat: 2, MaterialType: gamedata.MaterialBasic, Cost: 80},
		{Name: "smelter", Heat: 3, MaterialType: gamedata.MaterialIntermediate, Cost: 60},
		{Name: "kiln", Heat: 2, MaterialType: gamedata.MaterialBasic, Cost: 50},
		{Name: "fabricator", Heat: 4, MaterialType: gamedata.MaterialIntermediate, Cost: 90},
		{Name: "crusher", Heat: 2, MaterialType: gamedata.MaterialBasic, Cost: 40},
		{Name: "ore excavator", Heat: 5, MaterialType: gamedata.MaterialIntermediate, Cost: 120},
		{Name: "helium-3 extractor", Heat: 6, MaterialType: gamedata.MaterialQuartz, Cost: 40},
	}

	db, err := gamedata.NewDatabase(items, inputs, raws, buildings)
	require.NoError(t, err)
	return db
}

// findNodes returns every node in the tree for the named item, in walk order.
func findNodes(root *domain.ProductionNode, item string) []*domain.ProductionNode {
	var out []*domain.ProductionNode
	root.Walk(func(n *domain.ProductionNode) {
		if n.Item == item {
			out = append(out, n)
		}
	})
	return out
}

func TestResolve_SingleMachineChain(t *testing.T) {
	db := testDatabase(t)

	tree, sum, err := New(db, nil).Resolve("glass", 20)
	require.NoError(t, err)
	require.NotNil(t, tree)

	assert.Equal(t, "glass", tree.Item)
	assert.Equal(t, "furnace", tree.Machine)
	assert.Equal(t, 1, tree.Machines)
	assert.InDelta(t, 1.0, tree.MachinesExact, 1e-9)
	assert.InDelta(t, 20.0, tree.ProvidedIPM, 1e-9)
	require.Len(t, tree.Inputs, 2)

	// At the single-machine rate every item in the chain fits in one machine.
	assert.Equal(t, 5, sum.Len())
	for _, item := range sum.Items() {
		totals, ok := sum.Totals(item)
		require.True(t, ok)
		assert.Equal(t, 1, totals.Machines(), "item %s", item)
	}
}

func TestResolve_ScalesWithRoundedMachineCount(t *testing.T) {
	db := testDatabase(t)

	tree, sum, err := New(db, nil).Resolve("glass", 140)
	require.NoError(t, err)

	assert.Equal(t, 7, tree.Machines)
	assert.InDelta(t, 7.0, tree.MachinesExact, 1e-9)

	// 7 furnaces consume calcium powder at 7 * 40/min, not at the fractional
	// ideal the requested rate alone would imply.
	powder := findNodes(tree, "calcium powder")
	require.Len(t, powder, 1)
	assert.InDelta(t, 280.0, powder[0].RequiredIPM, 1e-9)
	assert.Equal(t, 5, powder[0].Machines)
	assert.InDelta(t, 4.6667, powder[0].MachinesExact, 1e-3)

	helium := findNodes(tree, "helium-3")
	require.Len(t, helium, 1)
	assert.InDelta(t, 140.0, helium[0].RequiredIPM, 1e-9)
	assert.Equal(t, 1, helium[0].Machines)

	// The block requirement follows the 5 rounded powder furnaces downward.
	block := findNodes(tree, "calcium block")
	require.Len(t, block, 1)
	assert.InDelta(t, 5*13.333333, block[0].RequiredIPM, 1e-6)
	assert.Equal(t, 2, block[0].Machines)

	ore := findNodes(tree, "calcium ore")
	require.Len(t, ore, 1)
	assert.InDelta(t, 2*13.333333, ore[0].RequiredIPM, 1e-6)
	assert.Equal(t, 1, ore[0].Machines)

	wantMachines := map[string]int{
		"glass":          7,
		"calcium powder": 5,
		"calcium block":  2,
		"calcium ore":    1,
		"helium-3":       1,
	}
	assert.Equal(t, len(wantMachines), sum.Len())
	for item, want := range wantMachines {
		totals, ok := sum.Totals(item)
		require.True(t, ok, "item %s missing from summary", item)
		assert.Equal(t, want, totals.Machines(), "item %s", item)
	}
}

func TestResolve_MachineCountNeverBelowOne(t *testing.T) {
	db := testDatabase(t)

	tree, _, err := New(db, nil).Resolve("glass", 0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, tree.Machines)
	assert.InDelta(t, 0.025, tree.MachinesExact, 1e-9)
	assert.InDelta(t, 20.0, tree.ProvidedIPM, 1e-9)
}

func TestResolve_RawItemRequest(t *testing.T) {
	db := testDatabase(t)

	tree, sum, err := New(db, nil).Resolve("wolfram ore", 100)
	require.NoError(t, err)

	assert.Equal(t, "ore excavator", tree.Machine)
	assert.Equal(t, 2, tree.Machines)
	assert.Empty(t, tree.Inputs)
	assert.Equal(t, 1, sum.Len())
}

func TestResolve_InvalidInputs(t *testing.T) {
	db := testDatabase(t)
	r := New(db, nil)

	t.Run("zero rate", func(t *testing.T) {
		_, _, err := r.Resolve("glass", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRate)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, _, err := r.Resolve("glass", -5)
		assert.ErrorIs(t, err, domain.ErrInvalidRate)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, _, err := r.Resolve("unobtainium", 10)
		assert.ErrorIs(t, err, domain.ErrUnknownItem)
	})
}

func TestResolve_PartialOverride(t *testing.T) {
	db := testDatabase(t)

	idx, err := overrides.NewIndex([]overrides.Entry{
		{ForItem: []string{"ceramics"}, ProvidedItem: "calcite sheets", ProvidedIPM: 20},
		{ForItem: []string{"ceramics", "wolfram powder"}, ProvidedItem: "wolfram bar", ProvidedIPM: 20},
	})
	require.NoError(t, err)

	tree, sum, err := New(db, idx).Resolve("ceramics", 120)
	require.NoError(t, err)

	assert.Equal(t, 3, tree.Machines)

	// A partially covered input becomes two siblings under the parent: the
	// provided leaf, then the machine node for the remainder.
	sheets := findNodes(tree, "calcite sheets")
	require.Len(t, sheets, 2)
	assert.True(t, sheets[0].Provided)
	assert.InDelta(t, 20.0, sheets[0].ProvidedIPM, 1e-9)
	assert.Empty(t, sheets[0].Machine)
	assert.Empty(t, sheets[0].Inputs)
	assert.False(t, sheets[1].Provided)
	assert.InDelta(t, 40.0, sheets[1].RequiredIPM, 1e-9)
	assert.Equal(t, 1, sheets[1].Machines)

	bars := findNodes(tree, "wolfram bar")
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Provided)
	assert.False(t, bars[1].Provided)
	assert.InDelta(t, 20.0, bars[1].RequiredIPM, 1e-9)
	assert.Equal(t, 1, bars[1].Machines)

	// Only the built remainder reaches the summary.
	sheetTotals, ok := sum.Totals("calcite sheets")
	require.True(t, ok)
	assert.InDelta(t, 40.0, sheetTotals.RequiredIPM, 1e-9)
	assert.Equal(t, 1, sheetTotals.Machines())

	barTotals, ok := sum.Totals("wolfram bar")
	require.True(t, ok)
	assert.InDelta(t, 20.0, barTotals.RequiredIPM, 1e-9)
	assert.Equal(t, 1, barTotals.Machines())
}

func TestResolve_FullOverride(t *testing.T) {
	db := testDatabase(t)

	// External capacity above the requirement: single leaf reporting the
	// actual capacity, no machines built below it.
	idx, err := overrides.NewIndex([]overrides.Entry{
		{ForItem: []string{"glass"}, ProvidedItem: "calcium powder", ProvidedIPM: 100},
	})
	require.NoError(t, err)

	tree, sum, err := New(db, idx).Resolve("glass", 20)
	require.NoError(t, err)

	powder := findNodes(tree, "calcium powder")
	require.Len(t, powder, 1)
	assert.True(t, powder[0].Provided)
	assert.InDelta(t, 100.0, powder[0].ProvidedIPM, 1e-9)
	assert.Empty(t, powder[0].Inputs)

	// The whole covered subtree vanishes from the summary.
	_, ok := sum.Totals("calcium powder")
	assert.False(t, ok)
	_, ok = sum.Totals("calcium block")
	assert.False(t, ok)
	_, ok = sum.Totals("calcium ore")
	assert.False(t, ok)
	_, ok = sum.Totals("helium-3")
	assert.True(t, ok)
}

func TestResolve_ZeroRateOverride(t *testing.T) {
	db := testDatabase(t)

	idx, err := overrides.NewIndex([]overrides.Entry{
		{ForItem: []string{"glass"}, ProvidedItem: "helium-3", ProvidedIPM: 0},
	})
	require.NoError(t, err)

	tree, sum, err := New(db, idx).Resolve("glass", 20)
	require.NoError(t, err)

	// The zero-rate leaf stays visible and the full requirement is still built.
	helium := findNodes(tree, "helium-3")
	require.Len(t, helium, 2)
	assert.True(t, helium[0].Provided)
	assert.Zero(t, helium[0].ProvidedIPM)
	assert.False(t, helium[1].Provided)
	assert.InDelta(t, 20.0, helium[1].RequiredIPM, 1e-9)

	totals, ok := sum.Totals("helium-3")
	require.True(t, ok)
	assert.InDelta(t, 20.0, totals.RequiredIPM, 1e-9)
}

func TestResolve_OverridePathIsPositional(t *testing.T) {
	db := testDatabase(t)

	// calcium block is consumed both under calcium powder and under calcite
	// sheets; covering one position must not touch the other.
	idx, err := overrides.NewIndex([]overrides.Entry{
		{ForItem: []string{"ceramics", "calcite sheets"}, ProvidedItem: "calcium block", ProvidedIPM: 1000},
	})
	require.NoError(t, err)

	tree, _, err := New(db, idx).Resolve("ceramics", 120)
	require.NoError(t, err)

	blocks := findNodes(tree, "calcium block")
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Provided)
}

func TestResolve_OverrideNeverMatchesRoot(t *testing.T) {
	db := testDatabase(t)

	// A root item cannot be overridden; paths address inputs, not the request.
	idx, err := overrides.NewIndex([]overrides.Entry{
		{ForItem: []string{"glass"}, ProvidedItem: "glass", ProvidedIPM: 1000},
	})
	require.NoError(t, err)

	tree, _, err := New(db, idx).Resolve("glass", 20)
	require.NoError(t, err)
	assert.False(t, tree.Provided)
	assert.Equal(t, "furnace", tree.Machine)
}

func TestResolve_SummaryMergesBranchesBeforeRounding(t *testing.T) {
	// widget needs iron through two intermediate branches; each branch alone
	// needs 0.4 machines of iron, merged they fit in one extractor rather
	// than one per branch.
	items := []gamedata.Item{
		{Name: "widget", Machine: "assembler", ItemsPerMin: 10},
		{Name: "gear", Machine: "assembler", ItemsPerMin: 10},
		{Name: "rod", Machine: "assembler", ItemsPerMin: 10},
	}
	inputs := []gamedata.RecipeInput{
		{Item: "widget", Input: "gear", RequiredPerMin: 8},
		{Item: "widget", Input: "rod", RequiredPerMin: 8},
		{Item: "gear", Input: "iron", RequiredPerMin: 4},
		{Item: "rod", Input: "iron", RequiredPerMin: 4},
	}
	raws := []gamedata.RawItem{
		{Name: "iron", Variant: "normal", Machine: "extractor", ItemsPerMin: 10},
	}
	buildings := []gamedata.Building{
		{Name: "assembler", Heat: 1, MaterialType: gamedata.MaterialBasic, Cost: 10},
		{Name: "extractor", Heat: 1, MaterialType: gamedata.MaterialBasic, Cost: 10},
	}
	db, err := gamedata.NewDatabase(items, inputs, raws, buildings)
	require.NoError(t, err)

	tree, sum, err := New(db, nil).Resolve("widget", 10)
	require.NoError(t, err)

	irons := findNodes(tree, "iron")
	require.Len(t, irons, 2)
	assert.Equal(t, 1, irons[0].Machines)
	assert.Equal(t, 1, irons[1].Machines)

	totals, ok := sum.Totals("iron")
	require.True(t, ok)
	assert.InDelta(t, 8.0, totals.RequiredIPM, 1e-9)
	assert.InDelta(t, 0.8, totals.MachinesExact(), 1e-9)
	assert.Equal(t, 1, totals.Machines())
}

func TestResolve_TreeAndSummaryAgree(t *testing.T) {
	db := testDatabase(t)

	tree, sum, err := New(db, nil).Resolve("ceramics", 120)
	require.NoError(t, err)

	// Summing machine-node requirements per item over the tree must reproduce
	// the summary totals exactly.
	required := make(map[string]float64)
	tree.Walk(func(n *domain.ProductionNode) {
		if !n.Provided {
			required[n.Item] += n.RequiredIPM
			// Machine nodes never under-provision.
			assert.GreaterOrEqual(t, n.ProvidedIPM, n.RequiredIPM, "item %s", n.Item)
		}
	})

	assert.Equal(t, len(required), sum.Len())
	for item, want := range required {
		totals, ok := sum.Totals(item)
		require.True(t, ok, "item %s missing from summary", item)
		assert.InDelta(t, want, totals.RequiredIPM, 1e-9, "item %s", item)
	}
}

func TestResolve_CyclicRecipesHitDepthGuard(t *testing.T) {
	items := []gamedata.Item{
		{Name: "a", Machine: "assembler", ItemsPerMin: 10},
		{Name: "b", Machine: "assembler", ItemsPerMin: 10},
	}
	inputs := []gamedata.RecipeInput{
		{Item: "a", Input: "b", RequiredPerMin: 5},
		{Item: "b", Input: "a", RequiredPerMin: 5},
	}
	buildings := []gamedata.Building{
		{Name: "assembler", Heat: 1, MaterialType: gamedata.MaterialBasic, Cost: 10},
	}
	db, err := gamedata.NewDatabase(items, inputs, nil, buildings)
	require.NoError(t, err)

	_, _, err = New(db, nil).Resolve("a", 10)
	assert.ErrorIs(t, err, domain.ErrChainTooDeep)
}

func TestSummary_Rows(t *testing.T) {
	db := testDatabase(t)

	_, sum, err := New(db, nil).Resolve("glass", 140)
	require.NoError(t, err)

	rows, err := sum.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// Rows come back sorted by item name.
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].Item, rows[i].Item)
	}

	byItem := make(map[string]Row, len(rows))
	for _, row := range rows {
		byItem[row.Item] = row
	}

	powder := byItem["calcium powder"]
	assert.Equal(t, 5, powder.Machines)
	assert.Equal(t, "furnace", powder.Machine)
	assert.Equal(t, 10, powder.Heat)
	assert.Equal(t, 400, powder.Cost)
	assert.Equal(t, gamedata.MaterialBasic, powder.Material)

	helium := byItem["helium-3"]
	assert.Equal(t, 1, helium.Machines)
	assert.Equal(t, 6, helium.Heat)
	assert.Equal(t, 40, helium.Cost)
	assert.Equal(t, gamedata.MaterialQuartz, helium.Material)
}
