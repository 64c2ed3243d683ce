package layout

import (
	"fmt"
	"sort"

	"github.com/myron-alexander/srcalc/internal/domain"
	"github.com/myron-alexander/srcalc/internal/gamedata"
)

// Verifier checks a parsed layout against the recipe database.
type Verifier struct {
	db *gamedata.Database
}

// NewVerifier creates a verifier backed by the given database.
func NewVerifier(db *gamedata.Database) *Verifier {
	return &Verifier{db: db}
}

// Verify runs the validation passes in order: every machine's item must exist
// in the database, every connection must reference something that exists, and
// every connection must carry an item its destination accepts. The order
// matters: later passes assume the earlier ones hold.
func (v *Verifier) Verify(defs *Definitions) error {
	if err := v.verifyItemsExist(defs); err != nil {
		return err
	}
	index := outputIndex(defs)
	if err := verifyConnections(defs, index); err != nil {
		return err
	}
	return v.verifyItemFlow(defs, index)
}

// outputIndex maps every factory output key in the layout to its definition.
// Keys cannot collide: site, factory, and output IDs are each unique within
// their parent object.
func outputIndex(defs *Definitions) map[string]Output {
	index := make(map[string]Output)
	for siteID, site := range defs.Sites {
		for facID, fac := range site.Factories {
			for outID, out := range fac.Outputs {
				index[OutputKey(siteID, facID, outID)] = out
			}
		}
	}
	return index
}

// verifyItemsExist checks that every machine produces an item the database
// knows: extractors must name a real raw item and variant, crafting machines
// a real crafted item.
func (v *Verifier) verifyItemsExist(defs *Definitions) error {
	for _, siteID := range sortedKeys(defs.Sites) {
		site := defs.Sites[siteID]
		for _, facID := range sortedKeys(site.Factories) {
			fac := site.Factories[facID]
			for _, machID := range sortedKeys(fac.Machines) {
				m := fac.Machines[machID]
				at := fmt.Sprintf("machine '%s' in factory '%s' at site '%s'", machID, facID, siteID)
				if m.Variant != "" {
					if _, err := v.db.RawFor(m.Item, m.Variant); err != nil {
						return fmt.Errorf("%w: %s: unknown raw item '%s' variant '%s'",
							domain.ErrInvalidLayout, at, m.Item, m.Variant)
					}
					continue
				}
				if _, err := v.db.RecipeFor(m.Item); err != nil {
					return fmt.Errorf("%w: %s: unknown crafted item '%s'",
						domain.ErrInvalidLayout, at, m.Item)
				}
			}
		}
	}
	return nil
}

// verifyConnections checks that every ID a feed names exists: machine, storage,
// and factory-input references resolve within the same factory, and factory
// inputs address a real output of some other factory.
func verifyConnections(defs *Definitions, index map[string]Output) error {
	for _, siteID := range sortedKeys(defs.Sites) {
		site := defs.Sites[siteID]
		for _, facID := range sortedKeys(site.Factories) {
			fac := site.Factories[facID]

			for _, machID := range sortedKeys(fac.Machines) {
				at := fmt.Sprintf("machine '%s' in factory '%s' at site '%s'", machID, facID, siteID)
				if err := checkFeeds(at, fac, fac.Machines[machID].Inputs, true); err != nil {
					return err
				}
			}
			for _, storID := range sortedKeys(fac.Storage) {
				at := fmt.Sprintf("storage '%s' in factory '%s' at site '%s'", storID, facID, siteID)
				st := fac.Storage[storID]
				for _, in := range st.Inputs {
					for _, id := range in.FromStorageIDs {
						if id == storID {
							return fmt.Errorf("%w: %s: may not feed from itself", domain.ErrInvalidLayout, at)
						}
					}
				}
				if err := checkFeeds(at, fac, st.Inputs, true); err != nil {
					return err
				}
			}
			for _, outID := range sortedKeys(fac.Outputs) {
				at := fmt.Sprintf("output '%s' in factory '%s' at site '%s'", outID, facID, siteID)
				out := fac.Outputs[outID]
				feeds := make([]MachineInput, 0, len(out.Sources))
				for _, src := range out.Sources {
					feeds = append(feeds, MachineInput{
						FromMachineIDs: src.FromMachineIDs,
						FromStorageIDs: src.FromStorageIDs,
					})
				}
				if err := checkFeeds(at, fac, feeds, false); err != nil {
					return err
				}
			}
			for _, inID := range sortedKeys(fac.Inputs) {
				at := fmt.Sprintf("input '%s' in factory '%s' at site '%s'", inID, facID, siteID)
				in := fac.Inputs[inID]
				if in.SiteID == siteID && in.FactoryID == facID {
					return fmt.Errorf("%w: %s: may not reference its own factory", domain.ErrInvalidLayout, at)
				}
				key := OutputKey(in.SiteID, in.FactoryID, in.FactoryOutputID)
				if _, ok := index[key]; !ok {
					return fmt.Errorf("%w: %s: unknown factory output '%s'", domain.ErrInvalidLayout, at, key)
				}
			}
		}
	}
	return nil
}

// checkFeeds resolves every ID the feeds name within the factory. Factory
// input references are only legal on machine and storage feeds.
func checkFeeds(at string, fac Factory, feeds []MachineInput, allowFactoryInputs bool) error {
	for _, feed := range feeds {
		for _, id := range feed.FromMachineIDs {
			if _, ok := fac.Machines[id]; !ok {
				return fmt.Errorf("%w: %s: unknown machine '%s'", domain.ErrInvalidLayout, at, id)
			}
		}
		for _, id := range feed.FromStorageIDs {
			if _, ok := fac.Storage[id]; !ok {
				return fmt.Errorf("%w: %s: unknown storage '%s'", domain.ErrInvalidLayout, at, id)
			}
		}
		for _, id := range feed.FromFactoryInputIDs {
			if !allowFactoryInputs {
				return fmt.Errorf("%w: %s: factory input '%s' may not feed an output", domain.ErrInvalidLayout, at, id)
			}
			if _, ok := fac.Inputs[id]; !ok {
				return fmt.Errorf("%w: %s: unknown factory input '%s'", domain.ErrInvalidLayout, at, id)
			}
		}
	}
	return nil
}

// verifyItemFlow checks that every feed carries an item its destination
// accepts: machines accept their recipe inputs, storage accepts the items it
// is declared to hold, and outputs accept the item they dispatch.
func (v *Verifier) verifyItemFlow(defs *Definitions, index map[string]Output) error {
	for _, siteID := range sortedKeys(defs.Sites) {
		site := defs.Sites[siteID]
		for _, facID := range sortedKeys(site.Factories) {
			fac := site.Factories[facID]

			for _, machID := range sortedKeys(fac.Machines) {
				m := fac.Machines[machID]
				if m.Variant != "" {
					continue
				}
				recipe, err := v.db.RecipeFor(m.Item)
				if err != nil {
					return err
				}
				required := make(map[string]struct{}, len(recipe.Inputs))
				for _, in := range recipe.Inputs {
					required[in.Input] = struct{}{}
				}
				at := fmt.Sprintf("machine '%s' in factory '%s' at site '%s'", machID, facID, siteID)
				if err := checkFlow(at, fac, m.Inputs, required, index); err != nil {
					return err
				}
			}
			for _, storID := range sortedKeys(fac.Storage) {
				st := fac.Storage[storID]
				required := make(map[string]struct{}, len(st.Items))
				for _, item := range st.Items {
					required[item] = struct{}{}
				}
				at := fmt.Sprintf("storage '%s' in factory '%s' at site '%s'", storID, facID, siteID)
				if err := checkFlow(at, fac, st.Inputs, required, index); err != nil {
					return err
				}
			}
			for _, outID := range sortedKeys(fac.Outputs) {
				out := fac.Outputs[outID]
				required := map[string]struct{}{out.DispatchedItem: {}}
				at := fmt.Sprintf("output '%s' in factory '%s' at site '%s'", outID, facID, siteID)
				for _, src := range out.Sources {
					feed := MachineInput{
						FromMachineIDs: src.FromMachineIDs,
						FromStorageIDs: src.FromStorageIDs,
					}
					if err := checkFlow(at, fac, []MachineInput{feed}, required, index); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// checkFlow verifies that each source named by the feeds supplies at least
// one item in the required set.
func checkFlow(at string, fac Factory, feeds []MachineInput, required map[string]struct{}, index map[string]Output) error {
	for _, feed := range feeds {
		for _, id := range feed.FromMachineIDs {
			produced := fac.Machines[id].Item
			if _, ok := required[produced]; !ok {
				return fmt.Errorf("%w: %s: machine '%s' supplies item '%s' which is not accepted here",
					domain.ErrInvalidLayout, at, id, produced)
			}
		}
		for _, id := range feed.FromStorageIDs {
			st := fac.Storage[id]
			if !intersects(st.Items, required) {
				return fmt.Errorf("%w: %s: storage '%s' holds no accepted item",
					domain.ErrInvalidLayout, at, id)
			}
		}
		for _, id := range feed.FromFactoryInputIDs {
			in := fac.Inputs[id]
			out := index[OutputKey(in.SiteID, in.FactoryID, in.FactoryOutputID)]
			if _, ok := required[out.DispatchedItem]; !ok {
				return fmt.Errorf("%w: %s: factory input '%s' supplies item '%s' which is not accepted here",
					domain.ErrInvalidLayout, at, id, out.DispatchedItem)
			}
		}
	}
	return nil
}

func intersects(items []string, required map[string]struct{}) bool {
	for _, item := range items {
		if _, ok := required[item]; ok {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
