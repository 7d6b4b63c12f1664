package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture writes a minimal matfile container holding a single triangle,
// matching matfile's on-disk format (1-based indices).
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.bin")

	type header struct {
		Magic       uint32
		NRows       uint64
		NCols       uint64
		NNZ         uint64
		MatrixNameN uint32
		FieldNameN  uint32
	}

	var buf bytes.Buffer
	h := header{
		Magic:       0x43534d31,
		NRows:       3,
		NCols:       3,
		NNZ:         6,
		MatrixNameN: uint32(len("Problem")),
		FieldNameN:  uint32(len("A")),
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &h))
	buf.WriteString("Problem")
	buf.WriteString("A")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []uint32{1, 3, 5, 7}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []uint32{2, 3, 1, 3, 1, 2}))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunSucceedsOnValidMatrix(t *testing.T) {
	path := writeFixture(t)
	code := run([]string{path, "--trials", "2", "--threads", "2", "--parallelism", "sequential"})
	assert.Equal(t, exitOK, code)
}

func TestRunFailsOnMissingFile(t *testing.T) {
	code := run([]string{"/nonexistent/path/does-not-exist.bin"})
	assert.Equal(t, exitUsageError, code)
}

func TestRunFailsOnBadParallelismFlag(t *testing.T) {
	path := writeFixture(t)
	code := run([]string{path, "--parallelism", "bogus"})
	assert.Equal(t, exitUsageError, code)
}

func TestRunFailsOnBadVariantFlag(t *testing.T) {
	path := writeFixture(t)
	code := run([]string{path, "--variant", "7"})
	assert.Equal(t, exitUsageError, code)
}
