// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// indexAt reads the i-th index of type t from little-endian client data.
func indexAt(t IndexType, src []byte, i uint64) uint32 {
	switch t {
	case IndexTypeUnsignedByte:
		return uint32(src[i])
	case IndexTypeUnsignedShort:
		return uint32(binary.LittleEndian.Uint16(src[i*2:]))
	default:
		return binary.LittleEndian.Uint32(src[i*4:])
	}
}

// ConvertIndices writes count indices of type t from src into dst in their
// storage format. 8-bit indices are widened to 16 bits; other widths are
// copied unchanged.
func ConvertIndices(t IndexType, src []byte, count uint64, dst []byte) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, t)
	}
	if err := checkCount(t.Size(), count, uint64(len(src))); err != nil {
		return err
	}
	if err := checkCount(t.StorageSize(), count, uint64(len(dst))); err != nil {
		return err
	}

	if t != IndexTypeUnsignedByte {
		copy(dst, src[:count*t.Size()])
		return nil
	}
	for i := uint64(0); i < count; i++ {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(src[i]))
	}
	return nil
}

// ComputeRange returns the smallest and largest of count indices of type t
// in src. An empty range reports (0, 0).
func ComputeRange(t IndexType, src []byte, count uint64) (minIndex, maxIndex uint32, err error) {
	if !t.Valid() {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, t)
	}
	if err := checkCount(t.Size(), count, uint64(len(src))); err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	minIndex = math.MaxUint32
	for i := uint64(0); i < count; i++ {
		v := indexAt(t, src, i)
		minIndex = min(minIndex, v)
		maxIndex = max(maxIndex, v)
	}
	return minIndex, maxIndex, nil
}

// checkCount verifies that count elements of elemSize bytes fit in length
// bytes without overflowing the multiplication.
func checkCount(elemSize, count, length uint64) error {
	if count > math.MaxUint64/elemSize || count*elemSize > length {
		return &RangeError{Offset: 0, Size: saturatingMul(count, elemSize), Capacity: length}
	}
	return nil
}

func saturatingMul(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * b
}
