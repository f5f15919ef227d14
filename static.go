// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import "fmt"

// StaticIndexBuffer holds index data that is uploaded once and drawn many
// times.
//
// It is sized exactly once. Growing or retyping it afterwards would
// invalidate every cached range and every outstanding draw offset, so it
// is refused with a *MisuseError.
type StaticIndexBuffer struct {
	indexStream
	ranges *IndexRangeCache
}

// NewStaticIndexBuffer creates a static buffer on r. No storage is
// allocated until the first ReserveBufferSpace.
func NewStaticIndexBuffer(r Renderer, opts ...Option) *StaticIndexBuffer {
	o := applyOptions(opts)
	if o.label == "" {
		o.label = "static-index"
	}
	return &StaticIndexBuffer{
		indexStream: newIndexStream(r, false, o),
		ranges:      NewIndexRangeCache(o.rangeCacheLimit),
	}
}

// ReserveBufferSpace sizes the buffer to exactly size bytes on first use.
// Later calls succeed without effect when the buffer is large enough and
// has the same index type; any other request is a caller error.
func (b *StaticIndexBuffer) ReserveBufferSpace(size uint64, t IndexType) error {
	if err := b.checkReserve(t); err != nil {
		return err
	}

	capacity := b.buffer.Size()
	switch {
	case capacity == 0:
		if size == 0 {
			return nil
		}
		return b.setBufferSize(size, t)

	case size <= capacity && b.buffer.IndexType() == t:
		return nil
	}

	err := &MisuseError{
		Op: "reserve static index buffer",
		Err: fmt.Errorf("%w: holds %d bytes of %v, %d bytes of %v requested",
			ErrStaticResize, capacity, b.buffer.IndexType(), size, t),
	}
	Logger().Error("ibstream: static index buffer misuse",
		"label", b.label, "capacity", capacity, "type", b.buffer.IndexType(),
		"requested", size, "requested_type", t)
	return err
}

// LookupRange returns the cached range for (sourceOffset, count).
func (b *StaticIndexBuffer) LookupRange(sourceOffset, count uint64) (IndexRange, bool) {
	r, ok := b.ranges.Lookup(sourceOffset, count)
	if ok {
		b.stats.RangeHits++
	} else {
		b.stats.RangeMisses++
	}
	b.observer.RangeLookup(b.label, ok)
	return r, ok
}

// AddRange records where (sourceOffset, count) was uploaded and its bounds.
func (b *StaticIndexBuffer) AddRange(sourceOffset, count uint64, r IndexRange) {
	b.ranges.Add(sourceOffset, count, r)
}

// RangeCache exposes the range cache for inspection.
func (b *StaticIndexBuffer) RangeCache() *IndexRangeCache {
	return b.ranges
}
