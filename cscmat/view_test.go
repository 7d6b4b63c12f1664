package cscmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	v, err := New(3, 3, []uint32{0, 2, 4, 6}, []uint32{1, 2, 0, 2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), v.NNZ)
	assert.Equal(t, []uint32{1, 2}, v.Column(0))
}

func TestNewRejectsBadColPtrLength(t *testing.T) {
	_, err := New(3, 3, []uint32{0, 2, 4}, []uint32{1, 2, 0, 2})
	assert.Error(t, err)
}

func TestNewRejectsNonZeroStart(t *testing.T) {
	_, err := New(2, 2, []uint32{1, 1, 2}, []uint32{0})
	assert.Error(t, err)
}

func TestNewRejectsNNZMismatch(t *testing.T) {
	_, err := New(2, 2, []uint32{0, 1, 1}, []uint32{0, 1})
	assert.Error(t, err)
}

func TestNewRejectsNonMonotoneColPtr(t *testing.T) {
	_, err := New(2, 2, []uint32{0, 2, 1}, []uint32{0})
	assert.Error(t, err)
}

func TestEmptyGraph(t *testing.T) {
	v, err := New(5, 5, []uint32{0, 0, 0, 0, 0, 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.NNZ)
	assert.Equal(t, uint64(5), v.LabelArraySize())
}
