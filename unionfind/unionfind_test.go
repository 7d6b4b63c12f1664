package unionfind

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLabels(n int) []atomic.Uint32 {
	label := make([]atomic.Uint32, n)
	for i := range label {
		label[i].Store(uint32(i))
	}
	return label
}

func TestFindCompressOnSingleton(t *testing.T) {
	label := newLabels(5)
	for v := 0; v < 5; v++ {
		assert.Equal(t, uint32(v), FindCompress(label, uint32(v)))
	}
}

func TestUnionRemMergesTwoSets(t *testing.T) {
	label := newLabels(4)
	UnionRem(label, 2, 1)
	root1 := FindCompress(label, 1)
	root2 := FindCompress(label, 2)
	assert.Equal(t, root1, root2)
	assert.Equal(t, uint32(1), root1) // canonical ordering: smaller id wins
}

func TestUnionRemIdempotent(t *testing.T) {
	label := newLabels(3)
	UnionRem(label, 0, 2)
	UnionRem(label, 0, 2)
	assert.Equal(t, FindCompress(label, 0), FindCompress(label, 2))
}

func TestFindCompressFlattensPath(t *testing.T) {
	label := newLabels(4)
	// Build a chain 3 -> 2 -> 1 -> 0 by hand.
	label[3].Store(2)
	label[2].Store(1)
	label[1].Store(0)
	root := FindCompress(label, 3)
	assert.Equal(t, uint32(0), root)
	assert.Equal(t, uint32(0), label[3].Load())
	assert.Equal(t, uint32(0), label[2].Load())
	assert.Equal(t, uint32(0), label[1].Load())
}

func TestUnionRemConcurrentStar(t *testing.T) {
	const n = 2000
	label := newLabels(n)

	var wg sync.WaitGroup
	for v := 1; v < n; v++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			UnionRem(label, 0, uint32(v))
		}(v)
	}
	wg.Wait()

	root := FindCompress(label, 0)
	for v := 1; v < n; v++ {
		assert.Equal(t, root, FindCompress(label, uint32(v)))
	}
}

func TestUnionRemNeverCreatesCycleUnderContention(t *testing.T) {
	const n = 500
	label := newLabels(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j += 7 {
			wg.Add(1)
			go func(a, b int) {
				defer wg.Done()
				UnionRem(label, uint32(a), uint32(b))
			}(i, j)
		}
	}
	wg.Wait()

	// Every vertex must resolve to a root in bounded steps (no cycle).
	for v := 0; v < n; v++ {
		root := FindCompress(label, uint32(v))
		assert.Equal(t, root, label[root].Load())
	}
}
