package domain

import "strings"

// PathSeparator joins chain path elements into a lookup key. Item names never
// contain a semicolon, which keeps the joined key unambiguous.
const PathSeparator = ";"

// ChainPath identifies a position in the production chain as the sequence of
// item names from the requested item down to the consuming item, root-first.
// Paths are compared structurally; the joined key is what override lookups use.
type ChainPath []string

// Extend returns a new path with item appended. The receiver is never mutated,
// so sibling branches can extend the same parent path independently.
func (p ChainPath) Extend(item string) ChainPath {
	next := make(ChainPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, item)
}

// Key returns the canonical string form used as a map key,
// e.g. "ceramics;wolfram powder".
func (p ChainPath) Key() string {
	return strings.Join(p, PathSeparator)
}

func (p ChainPath) String() string {
	return p.Key()
}
