package engine

import (
	"github.com/dimgerasimou/csc-components/cscmat"
	"github.com/dimgerasimou/csc-components/substrate"
	"github.com/dimgerasimou/csc-components/unionfind"
)

// countByUnionFind unions every stored edge, flattens every vertex to its
// root, then counts roots. See SPEC_FULL.md §4.3.
func countByUnionFind(view *cscmat.View, n, threads int, parallelism substrate.Mode) int {
	label := newLabelArray(n)
	ncols := int(view.NCols)

	// Union phase: dynamic chunking, since per-column edge counts are
	// highly skewed on scale-free graphs.
	substrate.ParallelFor(ncols, substrate.DefaultChunkSize, parallelism, threads, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			if c >= n {
				continue
			}
			for _, r := range view.Column(uint64(c)) {
				if int(r) >= n {
					// Out-of-range rows are silently skipped: this permits
					// rectangular CSC inputs where the vertex universe is
					// determined by NRows.
					continue
				}
				unionfind.UnionRem(label, r, uint32(c))
			}
		}
	})

	// Flatten phase: static partitioning is enough since every vertex costs
	// the same (amortized near-O(1) after the union phase's compression).
	substrate.ParallelFor(n, staticChunk(n, threads), parallelism, threads, func(lo, hi int) {
		for v := lo; v < hi; v++ {
			unionfind.FindCompress(label, uint32(v))
		}
	})

	// Count phase: parallel reduction over root indicators.
	count := substrate.ParallelReduce(n, staticChunk(n, threads), parallelism, threads, func(lo, hi int) uint64 {
		var local uint64
		for v := lo; v < hi; v++ {
			if label[v].Load() == uint32(v) {
				local++
			}
		}
		return local
	})

	return int(count)
}

// staticChunk computes an even static partition size for n items across
// threads workers, used by the flatten and count phases per the spec's
// "scheduling and chunking mirror union phase... flatten and count use
// static partitioning" note.
func staticChunk(n, threads int) int {
	if threads <= 0 {
		threads = 1
	}
	chunk := (n + threads - 1) / threads
	if chunk < 1 {
		chunk = 1
	}
	return chunk
}
