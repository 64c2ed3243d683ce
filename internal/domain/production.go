package domain

// ProvidedMachineName is the display label used in place of a machine name on
// nodes that stand in for an externally supplied input.
const ProvidedMachineName = "INPUT"

// ProductionNode is one node of the resolved production tree. It is either a
// machine node (Provided == false) describing the machines that craft or
// extract an item, or a provided leaf (Provided == true) standing in for an
// external supply of the item.
//
// A provided leaf has no machine, no inputs and a zero required rate; its
// ProvidedIPM reports the actual external capacity even when that exceeds what
// the parent needed.
type ProductionNode struct {
	Item    string `json:"item"`
	Machine string `json:"machine,omitempty"`

	// MachinesExact is RequiredIPM / PerMachineIPM before rounding.
	MachinesExact float64 `json:"machines_exact,omitempty"`
	// Machines is MachinesExact rounded up, never below one for a machine node.
	Machines int `json:"machines,omitempty"`

	// PerMachineIPM is the output rate of a single machine producing this item.
	PerMachineIPM float64 `json:"per_machine_ipm,omitempty"`
	// ProvidedIPM is Machines * PerMachineIPM for a machine node, or the
	// external capacity for a provided leaf.
	ProvidedIPM float64 `json:"provided_ipm"`
	// RequiredIPM is the rate requested from this node by its parent.
	RequiredIPM float64 `json:"required_ipm,omitempty"`

	Provided bool `json:"provided,omitempty"`

	// Inputs holds the child nodes in recipe input order. A partially covered
	// input contributes two siblings: the provided leaf, then the machine node
	// for the remainder.
	Inputs []*ProductionNode `json:"inputs,omitempty"`
}

// Walk calls fn for root and every node below it, depth-first in input order.
func (n *ProductionNode) Walk(fn func(*ProductionNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, in := range n.Inputs {
		in.Walk(fn)
	}
}
