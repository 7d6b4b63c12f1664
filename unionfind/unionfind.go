// Package unionfind implements the two disjoint-set primitives the
// union-find connected-components engine is built from: a path-compressing
// find and a lock-free, CAS-based union using Rem's algorithm with
// canonical ordering.
//
// The label array is represented as []atomic.Uint32 rather than []uint32 so
// that concurrent reads and writes from multiple engine workers are race-
// detector-clean while still only ever using relaxed loads/stores on the
// fast path, matching the reference C implementation's __ATOMIC_RELAXED
// traffic.
package unionfind

import "sync/atomic"

// MaxRetries bounds the CAS retry loop in UnionRem before falling back to an
// unconditional store. Ten is the value tuned into the reference pthreads
// and OpenMP implementations.
const MaxRetries = 10

// FindCompress walks parent pointers from x to its root, then walks x again
// redirecting every intermediate node directly to the root (path
// compression). It is safe to call concurrently with other FindCompress and
// UnionRem calls on the same label array: reads and writes are relaxed, and
// the inner guard (next == root, i.e. x already points at the root) avoids
// redundant writes and infinite loops if another goroutine has already
// re-pointed x.
//
// The returned root may be stale the instant after return — another
// goroutine may re-union it — so callers must re-find before acting on
// equality between two roots.
func FindCompress(label []atomic.Uint32, x uint32) uint32 {
	root := x
	for {
		p := label[root].Load()
		if p == root {
			break
		}
		root = p
	}

	for x != root {
		next := label[x].Load()
		if next == root {
			break
		}
		label[x].Store(root)
		x = next
	}

	return root
}

// UnionRem unions the sets containing a and b using Rem's algorithm:
// canonical ordering (the larger root is always redirected under the
// smaller) plus a bounded CAS retry loop. Canonical ordering is a
// correctness requirement, not a tie-break — it guarantees every link
// strictly decreases a label value, which forbids cycles regardless of how
// concurrent unions interleave.
//
// After MaxRetries failed attempts, UnionRem falls back to a single
// unconditional store. This can in principle race with a fresher link, but
// the bounded monotonicity of labels (every store only ever writes a
// smaller id) makes the fallback harmless in practice.
func UnionRem(label []atomic.Uint32, a, b uint32) {
	for attempt := 0; attempt < MaxRetries; attempt++ {
		a = FindCompress(label, a)
		b = FindCompress(label, b)
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}

		if label[b].CompareAndSwap(b, a) {
			return
		}
		b = label[b].Load()
	}

	// Fallback: one last find-pair, then an unconditional release-style
	// store if still disjoint.
	a = FindCompress(label, a)
	b = FindCompress(label, b)
	if a != b {
		if a > b {
			a, b = b, a
		}
		label[b].Store(a)
	}
}
