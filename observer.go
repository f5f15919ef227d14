// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

// Observer receives allocator events. Implementations must be cheap; they
// are called synchronously on the device goroutine.
//
// The metrics package provides a Prometheus-backed Observer.
type Observer interface {
	// BufferInitialized is called after a buffer got new storage.
	// oldSize is 0 for the first allocation.
	BufferInitialized(label string, oldSize, newSize uint64)

	// BufferDiscarded is called after a buffer orphaned its storage.
	BufferDiscarded(label string)

	// BufferMapped is called after a successful map of size bytes.
	BufferMapped(label string, size uint64)

	// RangeLookup is called for every static range cache lookup.
	RangeLookup(label string, hit bool)
}

type nopObserver struct{}

func (nopObserver) BufferInitialized(string, uint64, uint64) {}
func (nopObserver) BufferDiscarded(string)                   {}
func (nopObserver) BufferMapped(string, uint64)              {}
func (nopObserver) RangeLookup(string, bool)                 {}

// Stats counts what a single buffer has done since it was created.
type Stats struct {
	// Initializations counts allocations of new storage (first sizing,
	// growth and retyping).
	Initializations uint64

	// Discards counts orphaning of the backing store.
	Discards uint64

	// Maps counts successful MapBuffer calls.
	Maps uint64

	// BytesMapped is the total size of all successful maps.
	BytesMapped uint64

	// RangeHits and RangeMisses count static range cache lookups.
	RangeHits   uint64
	RangeMisses uint64
}
