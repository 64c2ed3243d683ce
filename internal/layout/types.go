// Package layout loads and verifies factory layout definition files. A layout
// describes the sites the player has built: which machines stand in each
// factory, how material flows between them, and what each factory ships out.
// Verification checks the layout against the recipe database so broken
// connections are caught before they are built in-game.
package layout

import "fmt"

// Definitions is the root of a layout file: all sites keyed by site ID.
type Definitions struct {
	Sites map[string]Site `json:"sites"`
}

// Site is a collection of factories around one teleporter. Heat is tracked
// per site; machines built at the site consume the heat budget.
type Site struct {
	Teleporter  string             `json:"teleporter"`
	HeatLimit   int                `json:"heat_limit"`
	HeatCurrent int                `json:"heat_current"`
	Factories   map[string]Factory `json:"factories"`
}

// Factory is one group of machines with a stated purpose. Inputs receive
// items dispatched from other factories, outputs ship items onward, and
// storage buffers items between machines.
type Factory struct {
	Purpose  string             `json:"purpose"`
	Machines map[string]Machine `json:"machines"`
	Inputs   map[string]Input   `json:"inputs,omitempty"`
	Outputs  map[string]Output  `json:"outputs,omitempty"`
	Storage  map[string]Storage `json:"storage,omitempty"`
}

// Machine is one placed machine. Extractors name a raw item variant and take
// no inputs; crafting machines name the recipe inputs feeding them. Exactly
// one of Variant and Inputs is set.
type Machine struct {
	Item    string         `json:"item"`
	Variant string         `json:"variant,omitempty"`
	Inputs  []MachineInput `json:"inputs,omitempty"`
}

// MachineInput is one feed into a machine or storage: which machines, factory
// inputs, or storage units within the same factory supply it, and the belt
// rate limit in items per minute.
type MachineInput struct {
	FromMachineIDs      []string `json:"from_machine_id,omitempty"`
	FromFactoryInputIDs []string `json:"from_factory_input_id,omitempty"`
	FromStorageIDs      []string `json:"from_storage_id,omitempty"`
	RateLimitIPM        int      `json:"rate_limit_ipm"`
}

// Storage is a buffer holding a fixed set of items. Storage is a destination
// and a local source for machines; it never starts a production chain.
type Storage struct {
	Items     []string       `json:"items"`
	NumStacks int            `json:"num_stacks"`
	Inputs    []MachineInput `json:"inputs"`
}

// Input receives items dispatched from another factory's output, addressed
// by site, factory, and output ID.
type Input struct {
	SiteID          string `json:"site_id"`
	FactoryID       string `json:"factory_id"`
	FactoryOutputID string `json:"factory_output_id"`
}

// Output dispatches one item out of the factory, fed by machines or storage
// within it.
type Output struct {
	DispatchedItem string         `json:"dispatched_item"`
	RateLimitIPM   int            `json:"rate_limit_ipm"`
	Sources        []OutputSource `json:"sources"`
}

// OutputSource is one feed into a factory output.
type OutputSource struct {
	FromMachineIDs []string `json:"from_machine_id,omitempty"`
	FromStorageIDs []string `json:"from_storage_id,omitempty"`
	RateLimitIPM   int      `json:"rate_limit_ipm"`
}

// OutputKey is the address of a factory output as referenced by factory
// inputs elsewhere in the layout.
func OutputKey(siteID, factoryID, outputID string) string {
	return fmt.Sprintf("%s;%s;%s", siteID, factoryID, outputID)
}
