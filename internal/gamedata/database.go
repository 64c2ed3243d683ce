package gamedata

import (
	"fmt"
	"sort"

	"github.com/myron-alexander/srcalc/internal/domain"
)

// Database is the read-only recipe database: item recipes, raw extraction
// rates and machine building costs. Build it once with NewDatabase (or a
// Loader) and share it freely; no method mutates it.
type Database struct {
	items     map[string]Item
	inputs    map[string][]RecipeInput
	raws      map[string]map[string]RawItem
	buildings map[string]Building
}

// NewDatabase assembles and validates a database from parsed records.
//
// Validation is deliberately strict so that resolution can assume every
// referenced name exists: any recipe input naming an unknown item, and any
// machine without a building cost, is rejected here rather than surfacing
// mid-traversal.
func NewDatabase(items []Item, inputs []RecipeInput, raws []RawItem, buildings []Building) (*Database, error) {
	db := &Database{
		items:     make(map[string]Item, len(items)),
		inputs:    make(map[string][]RecipeInput, len(items)),
		raws:      make(map[string]map[string]RawItem, len(raws)),
		buildings: make(map[string]Building, len(buildings)),
	}

	for _, b := range buildings {
		if _, ok := db.buildings[b.Name]; ok {
			return nil, fmt.Errorf("%w: building '%s' defined twice", domain.ErrInvalidConfig, b.Name)
		}
		db.buildings[b.Name] = b
	}

	for _, it := range items {
		if _, ok := db.items[it.Name]; ok {
			return nil, fmt.Errorf("%w: item '%s' defined twice", domain.ErrInvalidConfig, it.Name)
		}
		if it.ItemsPerMin <= 0 {
			return nil, fmt.Errorf("%w: item '%s' has non-positive output rate", domain.ErrInvalidConfig, it.Name)
		}
		if _, ok := db.buildings[it.Machine]; !ok {
			return nil, fmt.Errorf("%w: '%s' (machine for item '%s')", domain.ErrUnknownMachine, it.Machine, it.Name)
		}
		db.items[it.Name] = it
	}

	for _, r := range raws {
		if _, ok := db.items[r.Name]; ok {
			return nil, fmt.Errorf("%w: '%s' defined as both item and raw item", domain.ErrInvalidConfig, r.Name)
		}
		if r.ItemsPerMin <= 0 {
			return nil, fmt.Errorf("%w: raw item '%s' has non-positive output rate", domain.ErrInvalidConfig, r.Name)
		}
		if _, ok := db.buildings[r.Machine]; !ok {
			return nil, fmt.Errorf("%w: '%s' (machine for raw item '%s')", domain.ErrUnknownMachine, r.Machine, r.Name)
		}
		variants, ok := db.raws[r.Name]
		if !ok {
			variants = make(map[string]RawItem, 1)
			db.raws[r.Name] = variants
		}
		if _, ok := variants[r.Variant]; ok {
			return nil, fmt.Errorf("%w: raw item '%s' variant '%s' defined twice", domain.ErrInvalidConfig, r.Name, r.Variant)
		}
		variants[r.Variant] = r
	}

	for _, in := range inputs {
		if _, ok := db.items[in.Item]; !ok {
			return nil, fmt.Errorf("%w: '%s' (recipe input row for unknown item)", domain.ErrUnknownItem, in.Item)
		}
		if _, crafted := db.items[in.Input]; !crafted {
			if _, raw := db.raws[in.Input]; !raw {
				return nil, fmt.Errorf("%w: '%s' (input of item '%s')", domain.ErrUnknownItem, in.Input, in.Item)
			}
		}
		if in.RequiredPerMin <= 0 {
			return nil, fmt.Errorf("%w: input '%s' of item '%s' has non-positive rate", domain.ErrInvalidConfig, in.Input, in.Item)
		}
		db.inputs[in.Item] = append(db.inputs[in.Item], in)
	}

	for name := range db.items {
		if len(db.inputs[name]) == 0 {
			return nil, fmt.Errorf("%w: item '%s' has no recipe inputs", domain.ErrInvalidConfig, name)
		}
	}

	return db, nil
}

// RecipeFor returns the recipe for a crafted item. Lookup is by exact
// lowercase name; raw items are not recipes, use RawFor for those.
func (db *Database) RecipeFor(item string) (Recipe, error) {
	it, ok := db.items[item]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: '%s'", domain.ErrUnknownItem, item)
	}
	return Recipe{Output: it, Inputs: db.inputs[item]}, nil
}

// IsRaw reports whether the item terminates the production chain.
func (db *Database) IsRaw(item string) bool {
	_, ok := db.raws[item]
	return ok
}

// RawFor returns the extraction rate for a raw item variant.
func (db *Database) RawFor(item, variant string) (RawItem, error) {
	variants, ok := db.raws[item]
	if !ok {
		return RawItem{}, fmt.Errorf("%w: '%s'", domain.ErrUnknownItem, item)
	}
	r, ok := variants[variant]
	if !ok {
		return RawItem{}, fmt.Errorf("%w: '%s' (variant '%s')", domain.ErrUnknownItem, item, variant)
	}
	return r, nil
}

// Known reports whether the name resolves to either a crafted or a raw item.
func (db *Database) Known(item string) bool {
	if _, ok := db.items[item]; ok {
		return true
	}
	return db.IsRaw(item)
}

// BuildingFor returns the construction cost entry for a machine.
func (db *Database) BuildingFor(machine string) (Building, error) {
	b, ok := db.buildings[machine]
	if !ok {
		return Building{}, fmt.Errorf("%w: '%s'", domain.ErrUnknownMachine, machine)
	}
	return b, nil
}

// ItemNames returns the crafted item names in sorted order.
func (db *Database) ItemNames() []string {
	names := make([]string, 0, len(db.items))
	for name := range db.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OneMachineIPM returns the per-minute output of a single machine producing
// the crafted item. The CLI uses this as the default requested rate.
func (db *Database) OneMachineIPM(item string) (float64, error) {
	it, ok := db.items[item]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", domain.ErrUnknownItem, item)
	}
	return it.ItemsPerMin, nil
}
