package gamedata

// Item is one crafted item definition: what machine produces it and at what
// rate. Rates are items per minute for a single machine.
type Item struct {
	Name          string
	NumProduced   int
	PeriodSeconds float64
	Machine       string
	ItemsPerMin   float64
}

// RecipeInput is one input requirement of a crafted item. RequiredPerMin is
// the consumption rate of one machine producing the output item.
type RecipeInput struct {
	Item           string
	Input          string
	NumRequired    int
	PeriodSeconds  float64
	RequiredPerMin float64
}

// RawItem is a raw material extracted from the ground. Raw items terminate the
// production chain; they behave as recipes with no inputs. Only the "normal"
// variant is used by the calculator today, but the variant column is kept so
// the data format matches the game.
type RawItem struct {
	Name          string
	Variant       string
	NumProduced   int
	PeriodSeconds float64
	Machine       string
	ItemsPerMin   float64
}

// Building material categories.
const (
	MaterialBasic        = "bbm"
	MaterialIntermediate = "ibm"
	MaterialQuartz       = "qbm"
)

// Building is the construction cost of one machine: signed heat delta plus a
// cost in exactly one building-material category.
type Building struct {
	Name         string
	Heat         int
	MaterialType string
	Cost         int
}

// Recipe bundles a crafted item with its ordered inputs.
type Recipe struct {
	Output Item
	Inputs []RecipeInput
}

// VariantNormal is the only raw item variant the calculator resolves.
const VariantNormal = "normal"
