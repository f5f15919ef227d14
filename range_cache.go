// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import "github.com/gogpu/ibstream/internal/cache"

// IndexRange is what the range cache remembers about one uploaded range.
type IndexRange struct {
	// MinIndex and MaxIndex bound the index values in the range. Renderers
	// use them to pick the tightest vertex range for the draw.
	MinIndex uint32
	MaxIndex uint32

	// StreamOffset is the byte offset of the range in the index buffer.
	StreamOffset uint64
}

// rangeKey identifies a range of source index data.
type rangeKey struct {
	sourceOffset uint64
	count        uint64
}

// IndexRangeCache maps (source offset, element count) to an IndexRange.
//
// With a limit of 0 entries are never evicted; the cache then grows with
// the number of distinct ranges drawn from its buffer.
type IndexRangeCache struct {
	entries *cache.LRU[rangeKey, IndexRange]
}

// NewIndexRangeCache creates a cache holding at most limit ranges.
// A limit of 0 means unbounded.
func NewIndexRangeCache(limit int) *IndexRangeCache {
	return &IndexRangeCache{entries: cache.NewLRU[rangeKey, IndexRange](limit)}
}

// Lookup returns the range stored for (sourceOffset, count).
func (c *IndexRangeCache) Lookup(sourceOffset, count uint64) (IndexRange, bool) {
	return c.entries.Get(rangeKey{sourceOffset: sourceOffset, count: count})
}

// Add stores r for (sourceOffset, count), replacing any previous entry.
func (c *IndexRangeCache) Add(sourceOffset, count uint64, r IndexRange) {
	c.entries.Put(rangeKey{sourceOffset: sourceOffset, count: count}, r)
}

// Len returns the number of cached ranges.
func (c *IndexRangeCache) Len() int { return c.entries.Len() }

// Limit returns the entry limit, 0 for unbounded.
func (c *IndexRangeCache) Limit() int { return c.entries.Limit() }

// Evictions returns how many ranges were dropped to honor the limit.
func (c *IndexRangeCache) Evictions() uint64 { return c.entries.Evictions() }

// Clear drops every cached range.
func (c *IndexRangeCache) Clear() { c.entries.Clear() }
