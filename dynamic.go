// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import "math"

// DynamicIndexBuffer streams index data that is rewritten every frame.
//
// Capacity grows geometrically. Once it is large enough, each overflowing
// reservation orphans the backing store and restarts at offset 0, so the
// GPU never waits for earlier draws before new writes land.
type DynamicIndexBuffer struct {
	indexStream
}

// NewDynamicIndexBuffer creates a streaming buffer on r. No storage is
// allocated until the first ReserveBufferSpace.
func NewDynamicIndexBuffer(r Renderer, opts ...Option) *DynamicIndexBuffer {
	o := applyOptions(opts)
	if o.label == "" {
		o.label = "dynamic-index"
	}
	return &DynamicIndexBuffer{indexStream: newIndexStream(r, true, o)}
}

// ReserveBufferSpace guarantees that the next MapBuffer(size) fits.
//
// Transitions, checked in order:
//   - grow: size exceeds capacity. Capacity becomes max(size, 2×capacity),
//     the buffer is reinitialized with a new serial and the write position
//     returns to 0, even if reinitialization fails.
//   - retype: the stored index width differs from t. The buffer is
//     reinitialized at its current capacity and the write position
//     returns to 0.
//   - wrap: the tail cannot hold size bytes. The buffer is discarded and
//     the write position returns to 0.
//   - fit: nothing to do.
//
// Any offset obtained before a grow, retype or wrap refers to storage the
// GPU may no longer see and must not be drawn from.
func (b *DynamicIndexBuffer) ReserveBufferSpace(size uint64, t IndexType) error {
	if err := b.checkReserve(t); err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	capacity := b.buffer.Size()
	end := b.writePos + size

	switch {
	case size > capacity:
		err := b.setBufferSize(grownSize(capacity, size), t)
		b.writePos = 0
		return err

	case b.buffer.IndexType().StorageSize() != t.StorageSize():
		err := b.setBufferSize(capacity, t)
		b.writePos = 0
		return err

	case end > capacity || end < b.writePos:
		return b.discard()
	}

	return nil
}

// grownSize returns max(size, 2×capacity), saturating instead of wrapping.
func grownSize(capacity, size uint64) uint64 {
	doubled := capacity * 2
	if capacity > math.MaxUint64/2 {
		doubled = math.MaxUint64
	}
	return max(size, doubled)
}
