package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainPath_Extend(t *testing.T) {
	root := ChainPath{"ceramics"}
	left := root.Extend("wolfram powder")
	right := root.Extend("calcite sheets")

	assert.Equal(t, "ceramics", root.Key())
	assert.Equal(t, "ceramics;wolfram powder", left.Key())
	assert.Equal(t, "ceramics;calcite sheets", right.Key())
}

func TestChainPath_ExtendDoesNotAliasParent(t *testing.T) {
	// Extending the same parent twice must not let one branch overwrite the
	// other through a shared backing array.
	parent := make(ChainPath, 1, 4)
	parent[0] = "glass"

	a := parent.Extend("calcium powder")
	b := parent.Extend("helium-3")

	assert.Equal(t, "glass;calcium powder", a.Key())
	assert.Equal(t, "glass;helium-3", b.Key())
}

func TestChainPath_EmptyKey(t *testing.T) {
	assert.Empty(t, ChainPath(nil).Key())
	assert.Empty(t, ChainPath{}.Key())
}
