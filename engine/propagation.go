package engine

import (
	"sync/atomic"

	"github.com/dimgerasimou/csc-components/bitset"
	"github.com/dimgerasimou/csc-components/cscmat"
	"github.com/dimgerasimou/csc-components/substrate"
)

// countByPropagation runs iterative minimum-label propagation to
// convergence, then counts distinct labels. See SPEC_FULL.md §4.2.
//
// Racy reads of label[c] and label[r] are tolerated: the monotonicity
// invariant (every store only ever writes a smaller value) means any value
// ever observed is >= the component's true minimum, so convergence is
// unaffected — only the number of iterations is. A missed update in one
// iteration is caught on the next, because the edge that caused it still
// has mismatched endpoints.
func countByPropagation(view *cscmat.View, n, threads int, parallelism substrate.Mode) int {
	label := newLabelArray(n)
	ncols := int(view.NCols)

	for {
		var changed atomic.Bool

		substrate.ParallelFor(ncols, substrate.DefaultChunkSize, parallelism, threads, func(lo, hi int) {
			localChanged := false
			for c := lo; c < hi; c++ {
				if c >= n {
					continue
				}
				for _, r := range view.Column(uint64(c)) {
					if int(r) >= n {
						continue
					}
					lc := label[c].Load()
					lr := label[r].Load()
					if lc == lr {
						continue
					}
					m := lc
					if lr < m {
						m = lr
					}
					// Single-endpoint update: only the non-minimum side is
					// written, matching the reference's conditional-atomic-
					// store optimization (see DESIGN.md's Open Question
					// resolution).
					if lc > m {
						label[c].Store(m)
						localChanged = true
					} else if lr > m {
						label[r].Store(m)
						localChanged = true
					}
				}
			}
			if localChanged {
				changed.Store(true)
			}
		})

		if !changed.Load() {
			break
		}
	}

	flat := make([]uint32, n)
	for v := range flat {
		flat[v] = label[v].Load()
	}
	return bitset.CountDistinct(flat, n)
}
