package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/resolver"
)

func TestRenderSummary(t *testing.T) {
	var buf strings.Builder
	RenderSummary(&buf, []resolver.Row{
		{
			Item:          "calcium powder",
			ProvidedIPM:   300,
			RequiredIPM:   280,
			MachinesExact: 4.67,
			Machines:      5,
			Machine:       "furnace",
			Heat:          10,
			Cost:          400,
			Material:      gamedata.MaterialBasic,
		},
		{
			Item:          "glass",
			ProvidedIPM:   140,
			RequiredIPM:   140,
			MachinesExact: 7,
			Machines:      7,
			Machine:       "furnace",
			Heat:          14,
			Cost:          560,
			Material:      gamedata.MaterialBasic,
		},
	})
	out := buf.String()

	assert.Contains(t, out, "Item")
	assert.Contains(t, out, "Machines")
	assert.Contains(t, out, "calcium powder")
	assert.Contains(t, out, "4.67 (5)")
	assert.Contains(t, out, "7.00 (7)")
	assert.Contains(t, out, "400 bbm")
}

func TestRenderSummary_Empty(t *testing.T) {
	var buf strings.Builder
	RenderSummary(&buf, nil)
	assert.Contains(t, buf.String(), "Item")
}
