// Package matfile loads sparse binary matrices stored in a MAT-style
// container: a self-describing header, the matrix and field names, and one
// sparse pattern in CSC layout with 1-based indices.
package matfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dimgerasimou/csc-components/cscmat"
)

// magic identifies a container produced for this loader; it guards against
// accidentally pointing the loader at an unrelated binary file.
const magic = uint32(0x43534d31) // "CSM1"

// header mirrors the fixed-size preamble at the start of the file. It
// records the byte lengths of the matrix and field names that follow it.
// A file holds a single field; the loader does not scan past fields.
type header struct {
	Magic       uint32
	NRows       uint64
	NCols       uint64
	NNZ         uint64
	MatrixNameN uint32
	FieldNameN  uint32
}

// Load reads the named field of the named matrix struct from path and
// returns it as a cscmat.View, rebasing the file's 1-based row indices to
// Go's 0-based convention. matrixName and fieldName are matched against the
// corresponding entries recorded in the file; Load returns an error if
// either does not match, or if the file is truncated or malformed.
func Load(path, matrixName, fieldName string) (*cscmat.View, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matfile: open %s: %w", path, err)
	}
	defer f.Close()

	var h header
	if err := binary.Read(f, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("matfile: read header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("matfile: %s is not a recognized container (bad magic)", path)
	}
	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("matfile: stat %s: %w", path, err)
	}
	if words := uint64(st.Size()) / 4; h.NCols >= words || h.NNZ > words {
		return nil, fmt.Errorf("matfile: header sizes (ncols=%d, nnz=%d) exceed file size", h.NCols, h.NNZ)
	}

	gotMatrix, err := readString(f, h.MatrixNameN)
	if err != nil {
		return nil, fmt.Errorf("matfile: read matrix name: %w", err)
	}
	gotField, err := readString(f, h.FieldNameN)
	if err != nil {
		return nil, fmt.Errorf("matfile: read field name: %w", err)
	}
	if gotMatrix != matrixName {
		return nil, fmt.Errorf("matfile: matrix %q not found (file holds %q)", matrixName, gotMatrix)
	}
	if gotField != fieldName {
		return nil, fmt.Errorf("matfile: field %q not found on matrix %q (file holds %q)", fieldName, matrixName, gotField)
	}

	colPtr := make([]uint32, h.NCols+1)
	if err := binary.Read(f, binary.LittleEndian, &colPtr); err != nil {
		return nil, fmt.Errorf("matfile: read col_ptr: %w", err)
	}

	rowIdx := make([]uint32, h.NNZ)
	if err := binary.Read(f, binary.LittleEndian, &rowIdx); err != nil {
		return nil, fmt.Errorf("matfile: read row_idx: %w", err)
	}

	rebaseToZero(colPtr)
	rebaseToZero(rowIdx)

	view, err := cscmat.New(h.NRows, h.NCols, colPtr, rowIdx)
	if err != nil {
		return nil, fmt.Errorf("matfile: %s: %w", path, err)
	}
	return view, nil
}

func readString(r io.Reader, n uint32) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// rebaseToZero converts 1-based indices to 0-based in place. col_ptr's
// sentinel trailing entry (== nnz+1 in 1-based terms) rebases the same way
// as every other entry, since it is itself a 1-based index one past the end.
func rebaseToZero(idx []uint32) {
	for i, v := range idx {
		if v > 0 {
			idx[i] = v - 1
		}
	}
}
