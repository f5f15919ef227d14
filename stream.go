// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"fmt"
)

// indexStream is the backend-agnostic state shared by both allocators.
//
// It exclusively owns its Buffer and tracks writePos, the byte offset of
// the next free region. writePos only moves forward through MapBuffer and
// returns to 0 through discard or reinitialization.
type indexStream struct {
	buffer   Buffer
	dynamic  bool
	writePos uint64
	mapped   bool
	released bool

	label    string
	observer Observer
	stats    Stats
}

func newIndexStream(r Renderer, dynamic bool, o options) indexStream {
	return indexStream{
		buffer:   r.CreateIndexBuffer(),
		dynamic:  dynamic,
		label:    o.label,
		observer: o.observer,
	}
}

// MapBuffer maps size bytes at the current write position and advances it.
//
// The returned offset is the write position before the advance; it is the
// byte offset a draw call uses for this data. The mapping stays valid
// until UnmapBuffer. Space must have been reserved with
// ReserveBufferSpace first.
func (s *indexStream) MapBuffer(size uint64) (data []byte, offset uint64, err error) {
	if s.released {
		return nil, 0, ErrReleased
	}
	if s.mapped {
		return nil, 0, ErrAlreadyMapped
	}
	if s.writePos+size < s.writePos {
		return nil, 0, &RangeError{Offset: s.writePos, Size: size, Capacity: s.buffer.Size()}
	}

	data, err = s.buffer.Map(s.writePos, size)
	if err != nil {
		Logger().Warn("ibstream: map failed",
			"label", s.label, "offset", s.writePos, "size", size, "error", err)
		return nil, 0, fmt.Errorf("ibstream: map %d bytes at %d: %w", size, s.writePos, err)
	}

	offset = s.writePos
	s.writePos += size
	s.mapped = true
	s.stats.Maps++
	s.stats.BytesMapped += size
	s.observer.BufferMapped(s.label, size)
	return data, offset, nil
}

// UnmapBuffer ends the mapping started by MapBuffer.
func (s *indexStream) UnmapBuffer() error {
	if s.released {
		return ErrReleased
	}
	if !s.mapped {
		return ErrNotMapped
	}
	s.mapped = false
	if err := s.buffer.Unmap(); err != nil {
		return fmt.Errorf("ibstream: unmap: %w", err)
	}
	return nil
}

// discard orphans the backing store and rewinds to offset 0. On failure
// the write position is left where it was.
func (s *indexStream) discard() error {
	if err := s.buffer.Discard(); err != nil {
		Logger().Warn("ibstream: discard failed", "label", s.label, "error", err)
		return fmt.Errorf("ibstream: discard: %w", err)
	}
	s.writePos = 0
	s.stats.Discards++
	s.observer.BufferDiscarded(s.label)
	Logger().Debug("ibstream: discarded", "label", s.label, "serial", s.buffer.Serial())
	return nil
}

// setBufferSize initializes a buffer that was never sized and resizes one
// that was.
func (s *indexStream) setBufferSize(size uint64, t IndexType) error {
	oldSize := s.buffer.Size()
	oldSerial := s.buffer.Serial()

	var err error
	if oldSize == 0 {
		err = s.buffer.Initialize(size, t, s.dynamic)
	} else {
		err = s.buffer.Resize(size, t)
	}
	if err != nil {
		Logger().Warn("ibstream: buffer allocation failed",
			"label", s.label, "size", size, "type", t, "error", err)
		return err
	}

	if s.buffer.Serial() != oldSerial {
		s.stats.Initializations++
		s.observer.BufferInitialized(s.label, oldSize, s.buffer.Size())
		Logger().Debug("ibstream: buffer initialized",
			"label", s.label, "old_size", oldSize, "size", s.buffer.Size(),
			"type", t, "serial", s.buffer.Serial())
	}
	return nil
}

// checkReserve rejects reservations that cannot proceed in the current
// state.
func (s *indexStream) checkReserve(t IndexType) error {
	if s.released {
		return ErrReleased
	}
	if s.mapped {
		return ErrAlreadyMapped
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, t)
	}
	return nil
}

// Serial returns the serial of the current backing allocation.
func (s *indexStream) Serial() Serial { return s.buffer.Serial() }

// Size returns the capacity in bytes.
func (s *indexStream) Size() uint64 { return s.buffer.Size() }

// IndexType returns the index type the buffer was last sized for.
func (s *indexStream) IndexType() IndexType { return s.buffer.IndexType() }

// WritePosition returns the byte offset of the next free region.
func (s *indexStream) WritePosition() uint64 { return s.writePos }

// Buffer returns the backend buffer, for binding in draw calls.
func (s *indexStream) Buffer() Buffer { return s.buffer }

// Label returns the configured label.
func (s *indexStream) Label() string { return s.label }

// Stats returns a snapshot of the buffer's counters.
func (s *indexStream) Stats() Stats { return s.stats }

// Release destroys the backend buffer. Further calls fail with ErrReleased.
func (s *indexStream) Release() {
	if s.released {
		return
	}
	s.released = true
	s.mapped = false
	s.writePos = 0
	s.buffer.Release()
}
