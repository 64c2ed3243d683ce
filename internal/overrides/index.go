// Package overrides indexes externally supplied ("already available") inputs
// by their position in the production chain.
package overrides

import (
	"fmt"

	"github.com/myron-alexander/srcalc/internal/domain"
)

// Entry is one externally supplied input: the chain path of the consuming
// item, the item being provided, and the available rate.
type Entry struct {
	ForItem      []string
	ProvidedItem string
	ProvidedIPM  float64
}

// Index answers "is there an external supply of this item at this exact chain
// position". Path equality is exact sequence equality; the same item reached
// through a different path is a different position.
type Index struct {
	byPath map[string]map[string]float64
}

// NewIndex validates the entries and builds the lookup.
//
// Rejected at construction: empty paths, empty item names, negative rates, and
// duplicate (path, item) pairs. A zero rate is legal; the resolver renders it
// as a provided leaf with rate 0 so the intent stays visible in the output.
func NewIndex(entries []Entry) (*Index, error) {
	idx := &Index{byPath: make(map[string]map[string]float64, len(entries))}

	for i, e := range entries {
		if len(e.ForItem) == 0 {
			return nil, fmt.Errorf("%w: input %d has empty for_item", domain.ErrMalformedOverridePath, i)
		}
		for _, elem := range e.ForItem {
			if elem == "" {
				return nil, fmt.Errorf("%w: input %d has empty path element", domain.ErrMalformedOverridePath, i)
			}
		}
		if e.ProvidedItem == "" {
			return nil, fmt.Errorf("%w: input %d has empty provided_item", domain.ErrMalformedOverridePath, i)
		}
		if e.ProvidedIPM < 0 {
			return nil, fmt.Errorf("%w: input %d (%s)", domain.ErrNegativeOverride, i, e.ProvidedItem)
		}

		key := domain.ChainPath(e.ForItem).Key()
		at, ok := idx.byPath[key]
		if !ok {
			at = make(map[string]float64, 1)
			idx.byPath[key] = at
		}
		if _, exists := at[e.ProvidedItem]; exists {
			return nil, fmt.Errorf("%w: '%s' at path '%s'", domain.ErrDuplicateOverride, e.ProvidedItem, key)
		}
		at[e.ProvidedItem] = e.ProvidedIPM
	}

	return idx, nil
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{byPath: map[string]map[string]float64{}}
}

// Lookup returns the externally supplied rate for item at the given chain
// position, if any.
func (idx *Index) Lookup(path domain.ChainPath, item string) (float64, bool) {
	at, ok := idx.byPath[path.Key()]
	if !ok {
		return 0, false
	}
	rate, ok := at[item]
	return rate, ok
}

// Len returns the number of indexed overrides.
func (idx *Index) Len() int {
	n := 0
	for _, at := range idx.byPath {
		n += len(at)
	}
	return n
}
