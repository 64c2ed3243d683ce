package resolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/myron-alexander/srcalc/internal/gamedata"
)

// ItemTotals accumulates the per-item aggregate across every machine node in
// the tree. The same item appearing in multiple branches folds into one entry;
// provided leaves never contribute.
type ItemTotals struct {
	Item          string
	Machine       string
	PerMachineIPM float64
	ProvidedIPM   float64
	RequiredIPM   float64
}

// MachinesExact is the fractional machine count for the merged required total.
func (t *ItemTotals) MachinesExact() float64 {
	return t.RequiredIPM / t.PerMachineIPM
}

// Machines rounds the merged total up once. Rounding over the merged total
// rather than summing per-branch roundings means two branches that each need a
// fraction of a machine can share one.
func (t *ItemTotals) Machines() int {
	n := int(math.Ceil(t.MachinesExact()))
	if n < 1 {
		return 1
	}
	return n
}

// Row is one finished line of the aggregate report, heat and cost computed
// from the merged rounded machine count.
type Row struct {
	Item          string
	ProvidedIPM   float64
	RequiredIPM   float64
	MachinesExact float64
	Machines      int
	Machine       string
	Heat          int
	Cost          int
	Material      string
}

// Summary is the aggregate accumulator for one resolution. Each call to
// Resolve owns exactly one Summary; it is mutated while the tree is built and
// read-only afterwards.
type Summary struct {
	db     *gamedata.Database
	totals map[string]*ItemTotals
}

func newSummary(db *gamedata.Database) *Summary {
	return &Summary{
		db:     db,
		totals: make(map[string]*ItemTotals),
	}
}

// add folds one machine node into the per-item entry. The machine name and
// per-machine rate are invariant per item, so the first node wins and later
// nodes only accumulate rates.
func (s *Summary) add(item, machine string, perMachineIPM, providedIPM, requiredIPM float64) {
	t, ok := s.totals[item]
	if !ok {
		t = &ItemTotals{
			Item:          item,
			Machine:       machine,
			PerMachineIPM: perMachineIPM,
		}
		s.totals[item] = t
	}
	t.ProvidedIPM += providedIPM
	t.RequiredIPM += requiredIPM
}

// Totals returns the accumulated entry for an item, if any.
func (s *Summary) Totals(item string) (ItemTotals, bool) {
	t, ok := s.totals[item]
	if !ok {
		return ItemTotals{}, false
	}
	return *t, true
}

// Len returns the number of distinct items in the summary.
func (s *Summary) Len() int {
	return len(s.totals)
}

// Items returns the summarized item names sorted alphabetically.
func (s *Summary) Items() []string {
	names := make([]string, 0, len(s.totals))
	for name := range s.totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rows produces the report rows, one per item in sorted order. Heat and cost
// are recomputed here from the merged rounded machine count and the building
// table, never summed from per-branch roundings.
func (s *Summary) Rows() ([]Row, error) {
	rows := make([]Row, 0, len(s.totals))
	for _, item := range s.Items() {
		t := s.totals[item]
		b, err := s.db.BuildingFor(t.Machine)
		if err != nil {
			return nil, fmt.Errorf("summary for '%s': %w", item, err)
		}
		machines := t.Machines()
		rows = append(rows, Row{
			Item:          t.Item,
			ProvidedIPM:   t.ProvidedIPM,
			RequiredIPM:   t.RequiredIPM,
			MachinesExact: t.MachinesExact(),
			Machines:      machines,
			Machine:       t.Machine,
			Heat:          b.Heat * machines,
			Cost:          b.Cost * machines,
			Material:      b.MaterialType,
		})
	}
	return rows, nil
}
