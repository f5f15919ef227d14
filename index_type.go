// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"fmt"
	"math"
)

// IndexType is the logical width of each index in client data.
type IndexType uint8

const (
	// IndexTypeUnknown is the zero value. Uninitialized buffers report it.
	IndexTypeUnknown IndexType = iota

	// IndexTypeUnsignedByte is an 8-bit unsigned index.
	IndexTypeUnsignedByte

	// IndexTypeUnsignedShort is a 16-bit unsigned index.
	IndexTypeUnsignedShort

	// IndexTypeUnsignedInt is a 32-bit unsigned index.
	IndexTypeUnsignedInt
)

// String returns the string representation of IndexType.
func (t IndexType) String() string {
	switch t {
	case IndexTypeUnknown:
		return "Unknown"
	case IndexTypeUnsignedByte:
		return "UnsignedByte"
	case IndexTypeUnsignedShort:
		return "UnsignedShort"
	case IndexTypeUnsignedInt:
		return "UnsignedInt"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// Valid reports whether t names one of the three index widths.
func (t IndexType) Valid() bool {
	return t >= IndexTypeUnsignedByte && t <= IndexTypeUnsignedInt
}

// Size returns the width of one client index in bytes, or 0 if t is invalid.
func (t IndexType) Size() uint64 {
	switch t {
	case IndexTypeUnsignedByte:
		return 1
	case IndexTypeUnsignedShort:
		return 2
	case IndexTypeUnsignedInt:
		return 4
	default:
		return 0
	}
}

// MaxValue returns the largest index representable by t.
func (t IndexType) MaxValue() uint32 {
	switch t {
	case IndexTypeUnsignedByte:
		return math.MaxUint8
	case IndexTypeUnsignedShort:
		return math.MaxUint16
	case IndexTypeUnsignedInt:
		return math.MaxUint32
	default:
		return 0
	}
}

// StorageType returns the type used to store t in a native index buffer.
//
// Devices have no native 8-bit index format, so 8- and 16-bit indices are
// both stored as 16-bit. 32-bit indices are stored as 32-bit only when the
// device supports them; they are never narrowed, and ErrUnsupportedFormat
// is returned instead.
func (t IndexType) StorageType(supports32 bool) (IndexType, error) {
	switch t {
	case IndexTypeUnsignedByte, IndexTypeUnsignedShort:
		return IndexTypeUnsignedShort, nil
	case IndexTypeUnsignedInt:
		if !supports32 {
			return IndexTypeUnknown, fmt.Errorf("%w: %v indices need device support", ErrUnsupportedFormat, t)
		}
		return IndexTypeUnsignedInt, nil
	default:
		return IndexTypeUnknown, fmt.Errorf("%w: %v", ErrUnsupportedFormat, t)
	}
}

// StorageSize returns the width in bytes of one stored index of type t.
// 8-bit indices occupy 2 bytes once widened.
func (t IndexType) StorageSize() uint64 {
	switch t {
	case IndexTypeUnsignedByte, IndexTypeUnsignedShort:
		return 2
	case IndexTypeUnsignedInt:
		return 4
	default:
		return 0
	}
}
