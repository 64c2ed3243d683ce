// Package report renders the resolved production chain as terminal text: a
// banner, the aggregate summary table, and the box tree. It only formats what
// the resolver computed; no value is recalculated here.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/myron-alexander/srcalc/internal/domain"
	"github.com/myron-alexander/srcalc/internal/gamedata"
)

const (
	boxWidth    = 48
	childIndent = "|   "
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(boxWidth).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 1)
)

// BuildingLookup resolves a machine name to its construction cost entry.
// *gamedata.Database satisfies it.
type BuildingLookup interface {
	BuildingFor(machine string) (gamedata.Building, error)
}

// TreeRenderer prints the production tree, one box per node, children
// indented under their parent.
type TreeRenderer struct {
	buildings BuildingLookup
}

// NewTreeRenderer creates a renderer using the given building cost table.
func NewTreeRenderer(buildings BuildingLookup) *TreeRenderer {
	return &TreeRenderer{buildings: buildings}
}

// Render writes the tree. depthLimit <= 0 prints everything; N prints the
// root plus N levels of inputs. Limiting depth only suppresses boxes, it
// never changes a printed value.
func (r *TreeRenderer) Render(w io.Writer, root *domain.ProductionNode, depthLimit int) error {
	return r.renderNode(w, root, depthLimit, "", 0)
}

func (r *TreeRenderer) renderNode(w io.Writer, node *domain.ProductionNode, depthLimit int, indent string, depth int) error {
	if depthLimit > 0 && depth > depthLimit {
		return nil
	}

	lines, err := r.nodeLines(node)
	if err != nil {
		return err
	}

	box := boxStyle.Render(strings.Join(lines, "\n"))
	for _, line := range strings.Split(box, "\n") {
		if _, err := fmt.Fprintln(w, indent+line); err != nil {
			return err
		}
	}

	for _, in := range node.Inputs {
		if err := r.renderNode(w, in, depthLimit, childIndent+indent, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeLines builds the block content: 4 lines for a machine node, 3 for a
// provided leaf.
func (r *TreeRenderer) nodeLines(node *domain.ProductionNode) ([]string, error) {
	if node.Provided {
		return []string{
			domain.ProvidedMachineName,
			node.Item,
			fmt.Sprintf("prov: %s", fmtRate(node.ProvidedIPM)),
		}, nil
	}

	b, err := r.buildings.BuildingFor(node.Machine)
	if err != nil {
		return nil, fmt.Errorf("rendering '%s': %w", node.Item, err)
	}

	return []string{
		fmt.Sprintf("%s (x%d)  [heat %d] [%d %s]",
			node.Machine, node.Machines, b.Heat*node.Machines, b.Cost*node.Machines, b.MaterialType),
		node.Item,
		fmt.Sprintf("prov: %s    (%s/machine)",
			fmtRate(node.ProvidedIPM), fmtRate(node.PerMachineIPM)),
		fmt.Sprintf("req:  %.2f (%.3f machines)",
			node.RequiredIPM, node.MachinesExact),
	}, nil
}

// Banner writes the request header box.
func Banner(w io.Writer, item string, rate float64) {
	text := fmt.Sprintf("REQUESTING: %s ipm of %s", fmtRate(rate), item)
	fmt.Fprintln(w, bannerStyle.Render(text))
}

// fmtRate prints whole rates without a fraction and everything else with two
// decimals, matching how the game presents item rates.
func fmtRate(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
