package export

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFvecsDim bounds the dimension accepted by ReadFvecs so a corrupt header
// cannot trigger a huge allocation.
const MaxFvecsDim = 1 << 16

// WriteFvecs writes vectors in FVECS format.
//
// For each vector:
//   - 4 bytes: dimension (int32, little-endian)
//   - dimension * 4 bytes: float32 values (little-endian)
func WriteFvecs(w io.Writer, vectors [][]float32) error {
	for i, v := range vectors {
		if err := binary.Write(w, binary.LittleEndian, int32(len(v))); err != nil {
			return fmt.Errorf("failed to write dimension of vector %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("failed to write values of vector %d: %w", i, err)
		}
	}
	return nil
}

// ReadFvecs reads vectors written by WriteFvecs. All vectors must have the
// same dimension.
func ReadFvecs(r io.Reader) ([][]float32, error) {
	var vectors [][]float32
	var expectedDim int32 = -1

	for {
		var dim int32
		err := binary.Read(r, binary.LittleEndian, &dim)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dimension: %w", err)
		}
		if dim <= 0 || dim > MaxFvecsDim {
			return nil, fmt.Errorf("invalid dimension: %d", dim)
		}

		if expectedDim == -1 {
			expectedDim = dim
		} else if dim != expectedDim {
			return nil, fmt.Errorf("inconsistent dimensions: expected %d, got %d", expectedDim, dim)
		}

		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("failed to read vector values: %w", err)
		}
		vectors = append(vectors, vec)
	}

	return vectors, nil
}
