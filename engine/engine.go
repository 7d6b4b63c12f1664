// Package engine implements the concurrent connected-components engines
// (label propagation and union-find) and the dispatch facade that selects
// among them and the four substrate.Mode scheduling strategies.
package engine

import (
	"sync/atomic"

	"github.com/dimgerasimou/csc-components/cscmat"
	"github.com/dimgerasimou/csc-components/substrate"
)

// Variant selects which connected-components algorithm to run.
type Variant int

const (
	// Propagation is iterative minimum-label propagation.
	Propagation Variant = 0
	// UnionFind is lock-free union-find with Rem's algorithm.
	UnionFind Variant = 1
)

// invalidCount is returned for an invalid variant or an allocation failure,
// matching the reference engine's -1 sentinel.
const invalidCount = -1

// CountComponents is the single dispatch facade mapping
// (view, threads, variant, parallelism) to a connected-component count. It
// returns the count (>= 0), or -1 for an unknown variant or if the run
// panics, for example when make rejects a label array length it cannot
// allocate. A true out-of-memory condition is a fatal runtime error in Go,
// which recover cannot catch, so it is not turned into -1.
//
// nrows == 0 returns 0 immediately per the spec's degenerate-input rule.
func CountComponents(view *cscmat.View, threads int, variant Variant, parallelism substrate.Mode) (result int) {
	if view.NRows == 0 {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			// Any panic during the run, such as make rejecting a label
			// array length it cannot allocate, becomes the -1 sentinel
			// rather than escaping to the caller.
			result = invalidCount
		}
	}()

	n := int(view.LabelArraySize())

	switch variant {
	case Propagation:
		return countByPropagation(view, n, threads, parallelism)
	case UnionFind:
		return countByUnionFind(view, n, threads, parallelism)
	default:
		return invalidCount
	}
}

// newLabelArray allocates and identity-initializes a label array of size n:
// label[v] = v for every v, the shared starting state of both engines.
func newLabelArray(n int) []atomic.Uint32 {
	label := make([]atomic.Uint32, n)
	for v := range label {
		label[v].Store(uint32(v))
	}
	return label
}
