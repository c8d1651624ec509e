// Package grid converts between 3D regular-grid indices and flat array
// positions.
//
// The layout is row-major (C order): the last dimension is contiguous
// in memory. For DICOM image stacks dimension 0 is the slice index,
// dimension 1 the row and dimension 2 the column. Both conversions
// validate their input against the grid extents and return an error
// instead of clamping or wrapping.
package grid

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an index or linear position lies
// outside the declared grid extents.
var ErrIndexOutOfRange = errors.New("index out of range")

// ToLinear converts a 3D index to its flat array position:
// index[0]*n1*n2 + index[1]*n2 + index[2] for extents (n0, n1, n2).
func ToLinear(index, extents [3]uint16) (uint64, error) {
	for i := range index {
		if index[i] >= extents[i] {
			return 0, fmt.Errorf("indices (%d,%d,%d) exceed extents (%d,%d,%d): %w",
				index[0], index[1], index[2], extents[0], extents[1], extents[2], ErrIndexOutOfRange)
		}
	}
	n1, n2 := uint64(extents[1]), uint64(extents[2])
	return uint64(index[0])*n1*n2 + uint64(index[1])*n2 + uint64(index[2]), nil
}

// FromLinear converts a flat array position back to its 3D index.
func FromLinear(linear uint64, extents [3]uint16) ([3]uint16, error) {
	n0, n1, n2 := uint64(extents[0]), uint64(extents[1]), uint64(extents[2])
	total := n0 * n1 * n2
	if linear >= total {
		return [3]uint16{}, fmt.Errorf("linear index %d exceeds grid size %d: %w",
			linear, total, ErrIndexOutOfRange)
	}
	return [3]uint16{
		uint16(linear / n2 / n1),
		uint16(linear / n2 % n1),
		uint16(linear % n2),
	}, nil
}
