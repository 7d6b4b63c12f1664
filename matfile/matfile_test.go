package matfile

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeContainer builds a minimal MAT-style container on disk for testing,
// using 1-based colPtr/rowIdx as the on-disk convention requires.
func writeContainer(t *testing.T, path, matrixName, fieldName string, nrows, ncols, nnz uint64, colPtr1, rowIdx1 []uint32) {
	t.Helper()
	var buf bytes.Buffer

	h := header{
		Magic:       magic,
		NRows:       nrows,
		NCols:       ncols,
		NNZ:         nnz,
		MatrixNameN: uint32(len(matrixName)),
		FieldNameN:  uint32(len(fieldName)),
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &h))
	buf.WriteString(matrixName)
	buf.WriteString(fieldName)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, colPtr1))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, rowIdx1))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadRebasesOneBasedIndices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")

	// Triangle on 3 vertices, 1-based on disk: col_ptr = [1,3,5,7], row_idx
	// all shifted up by one relative to the 0-based view we expect back.
	writeContainer(t, path, "Problem", "A", 3, 3, 6,
		[]uint32{1, 3, 5, 7},
		[]uint32{2, 3, 1, 3, 1, 2},
	)

	view, err := Load(path, "Problem", "A")
	require.NoError(t, err)

	assert.Equal(t, uint64(3), view.NRows)
	assert.Equal(t, []uint32{0, 2, 4, 6}, view.ColPtr)
	assert.Equal(t, []uint32{1, 2, 0, 2, 0, 1}, view.RowIdx)
}

func TestLoadRejectsWrongMatrixName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	writeContainer(t, path, "Problem", "A", 2, 2, 0, []uint32{1, 1, 1}, nil)

	_, err := Load(path, "Other", "A")
	assert.Error(t, err)
}

func TestLoadRejectsWrongFieldName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	writeContainer(t, path, "Problem", "A", 2, 2, 0, []uint32{1, 1, 1}, nil)

	_, err := Load(path, "Problem", "B")
	assert.Error(t, err)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a container at all"), 0o644))

	_, err := Load(path, "Problem", "A")
	assert.Error(t, err)
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.bin")
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, magic))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := Load(path, "Problem", "A")
	assert.Error(t, err)
}

func TestLoadEmptyMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	writeContainer(t, path, "Problem", "A", 4, 4, 0, []uint32{1, 1, 1, 1, 1}, nil)

	view, err := Load(path, "Problem", "A")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), view.NNZ)
	assert.Equal(t, uint64(4), view.LabelArraySize())
}
