// Package resolver computes the production chain for a requested item and
// rate: which machines to build, how many of each, and what every
// intermediate item requires, with externally supplied inputs applied as
// offsets at their exact position in the chain.
package resolver

import (
	"fmt"
	"math"

	"github.com/myron-alexander/srcalc/internal/domain"
	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/overrides"
)

// MaxChainDepth caps the recursion. The shipped recipe graph is acyclic and
// shallow; hitting this means the data contains a cycle.
const MaxChainDepth = 100

// Resolver walks the recipe graph. It is immutable and safe to share;
// each Resolve call owns its own accumulator.
type Resolver struct {
	db  *gamedata.Database
	idx *overrides.Index
}

// New creates a resolver over the recipe database and an optional override
// index. Pass nil when no inputs are externally supplied.
func New(db *gamedata.Database, idx *overrides.Index) *Resolver {
	if idx == nil {
		idx = overrides.Empty()
	}
	return &Resolver{db: db, idx: idx}
}

// Resolve computes the production tree and aggregate summary for crafting
// item at rate items per minute. On error no partial tree is returned.
func (r *Resolver) Resolve(item string, rate float64) (*domain.ProductionNode, *Summary, error) {
	if rate <= 0 {
		return nil, nil, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, rate)
	}
	if !r.db.Known(item) {
		return nil, nil, fmt.Errorf("%w: '%s'", domain.ErrUnknownItem, item)
	}

	sum := newSummary(r.db)
	nodes, err := r.resolve(nil, item, rate, 0, sum)
	if err != nil {
		return nil, nil, err
	}
	// Overrides require a non-empty path, so the root request always resolves
	// to exactly one machine node.
	return nodes[0], sum, nil
}

// resolve handles one (path, item, rate) request. It returns one node in the
// common case, or two siblings when an override partially covers the need:
// the provided leaf first, then the machine node for the remainder.
func (r *Resolver) resolve(path domain.ChainPath, item string, required float64, depth int, sum *Summary) ([]*domain.ProductionNode, error) {
	if depth > MaxChainDepth {
		return nil, fmt.Errorf("%w: at '%s' below path '%s'", domain.ErrChainTooDeep, item, path)
	}

	supplied, ok := r.idx.Lookup(path, item)
	if !ok {
		node, err := r.build(path, item, required, depth, sum)
		if err != nil {
			return nil, err
		}
		return []*domain.ProductionNode{node}, nil
	}

	// The leaf reports the actual external capacity, even when it exceeds the
	// requirement.
	leaf := &domain.ProductionNode{
		Item:        item,
		ProvidedIPM: supplied,
		Provided:    true,
	}
	if supplied >= required {
		// Fully covered: no machines, no recursion, no summary contribution.
		return []*domain.ProductionNode{leaf}, nil
	}

	// Partially covered (a zero-rate override lands here and leaves the whole
	// requirement to be built).
	node, err := r.build(path, item, required-supplied, depth, sum)
	if err != nil {
		return nil, err
	}
	return []*domain.ProductionNode{leaf, node}, nil
}

// build creates the machine node for an uncovered requirement and recurses
// into the recipe inputs.
func (r *Resolver) build(path domain.ChainPath, item string, required float64, depth int, sum *Summary) (*domain.ProductionNode, error) {
	if r.db.IsRaw(item) {
		raw, err := r.db.RawFor(item, gamedata.VariantNormal)
		if err != nil {
			return nil, err
		}
		node := machineNode(item, raw.Machine, raw.ItemsPerMin, required)
		sum.add(item, raw.Machine, raw.ItemsPerMin, node.ProvidedIPM, required)
		return node, nil
	}

	recipe, err := r.db.RecipeFor(item)
	if err != nil {
		return nil, err
	}

	node := machineNode(item, recipe.Output.Machine, recipe.Output.ItemsPerMin, required)

	// Input requirements scale with the rounded machine count: the machines
	// actually built consume at full rate, not at the fractional ideal.
	childPath := path.Extend(item)
	for _, in := range recipe.Inputs {
		inputRequired := float64(node.Machines) * in.RequiredPerMin
		children, err := r.resolve(childPath, in.Input, inputRequired, depth+1, sum)
		if err != nil {
			return nil, err
		}
		node.Inputs = append(node.Inputs, children...)
	}

	sum.add(item, recipe.Output.Machine, recipe.Output.ItemsPerMin, node.ProvidedIPM, required)
	return node, nil
}

func machineNode(item, machine string, perMachineIPM, required float64) *domain.ProductionNode {
	exact := required / perMachineIPM
	machines := int(math.Ceil(exact))
	if machines < 1 {
		machines = 1
	}
	return &domain.ProductionNode{
		Item:          item,
		Machine:       machine,
		MachinesExact: exact,
		Machines:      machines,
		PerMachineIPM: perMachineIPM,
		ProvidedIPM:   float64(machines) * perMachineIPM,
		RequiredIPM:   required,
	}
}
