package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/myron-alexander/srcalc/internal/resolver"
)

var summaryBorderStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderSummary writes the aggregate table, one row per item in the order the
// resolver produced them (already sorted alphabetically).
func RenderSummary(w io.Writer, rows []resolver.Row) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(int, int) lipgloss.Style { return summaryBorderStyle }).
		Headers("Item", "Provided IPM", "Required IPM", "Machines", "Machine", "Heat", "Cost")

	for _, row := range rows {
		t.Row(
			row.Item,
			fmt.Sprintf("%.2f", row.ProvidedIPM),
			fmt.Sprintf("%.2f", row.RequiredIPM),
			fmt.Sprintf("%.2f (%d)", row.MachinesExact, row.Machines),
			row.Machine,
			strconv.Itoa(row.Heat),
			fmt.Sprintf("%d %s", row.Cost, row.Material),
		)
	}

	fmt.Fprintln(w, t)
}
