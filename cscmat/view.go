// Package cscmat defines the read-only sparse incidence view the connected-
// components engine operates on: a binary matrix in compressed-sparse-column
// form, treated as the adjacency pattern of an undirected graph.
package cscmat

import "fmt"

// View is an immutable compressed-sparse-column view of a 0/1 incidence
// matrix. Non-zero entries are implicit; only row indices and column
// pointers are stored. The caller owns View and guarantees it is not
// mutated for the duration of any engine call.
//
// The pattern is assumed symmetric (an undirected graph): for every stored
// (RowIdx[k], c) the engine also treats (c, RowIdx[k]) as present, without
// ever checking or enforcing it.
type View struct {
	NRows uint64
	NCols uint64
	NNZ   uint64

	// ColPtr has length NCols+1. ColPtr[c]..ColPtr[c+1] indexes the rows
	// with a nonzero in column c. Monotone non-decreasing; ColPtr[0] == 0
	// and ColPtr[NCols] == NNZ.
	ColPtr []uint32

	// RowIdx has length NNZ. Entries are not required to be < NRows; both
	// the union-find and the propagation paths skip out-of-range rows.
	RowIdx []uint32
}

// New builds a View from raw CSC arrays. It performs only the cheap shape
// checks the spec requires of a well-formed input; it does not validate
// symmetry, since correctness under an asymmetric pattern is the caller's
// responsibility, not the engine's.
func New(nrows, ncols uint64, colPtr []uint32, rowIdx []uint32) (*View, error) {
	if uint64(len(colPtr)) != ncols+1 {
		return nil, fmt.Errorf("cscmat: col_ptr has length %d, want %d", len(colPtr), ncols+1)
	}
	if len(colPtr) > 0 && colPtr[0] != 0 {
		return nil, fmt.Errorf("cscmat: col_ptr[0] = %d, want 0", colPtr[0])
	}
	nnz := uint64(len(rowIdx))
	if n := len(colPtr); n > 0 && uint64(colPtr[n-1]) != nnz {
		return nil, fmt.Errorf("cscmat: col_ptr[ncols] = %d, want nnz %d", colPtr[n-1], nnz)
	}
	for i := 1; i < len(colPtr); i++ {
		if colPtr[i] < colPtr[i-1] {
			return nil, fmt.Errorf("cscmat: col_ptr not monotone at index %d", i)
		}
	}
	return &View{NRows: nrows, NCols: ncols, NNZ: nnz, ColPtr: colPtr, RowIdx: rowIdx}, nil
}

// Column returns the row indices stored in column c.
func (v *View) Column(c uint64) []uint32 {
	return v.RowIdx[v.ColPtr[c]:v.ColPtr[c+1]]
}

// LabelArraySize returns the length the engine's label array must have:
// NRows, per the spec's disjoint-set and propagation interpretations. This
// tolerates rectangular CSC inputs where NCols != NRows; both engines guard
// row and column indices against NRows before indexing the label array.
func (v *View) LabelArraySize() uint64 {
	return v.NRows
}
