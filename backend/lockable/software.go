// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import (
	"fmt"
	"sync"
)

// DeviceStats counts what a SoftwareDevice has been asked to do.
type DeviceStats struct {
	BuffersCreated   uint64
	BuffersReleased  uint64
	Locks            uint64
	DiscardLocks     uint64
	NoOverwriteLocks uint64
	Orphans          uint64
	BytesAllocated   uint64
}

// SoftwareDevice is a Device backed by host memory.
//
// A discard lock swaps the buffer's storage for a fresh zeroed slice,
// the way a driver renames an orphaned buffer. An optional budget limits
// the bytes held by live buffers.
//
// SoftwareDevice is safe for concurrent use; the resources it creates are
// not.
type SoftwareDevice struct {
	mu     sync.Mutex
	caps   Caps
	budget uint64
	stats  DeviceStats
}

// NewSoftwareDevice creates a software device reporting caps.
func NewSoftwareDevice(caps Caps) *SoftwareDevice {
	return &SoftwareDevice{caps: caps}
}

// SetBudget limits the total bytes of live buffers. Zero removes the limit.
func (d *SoftwareDevice) SetBudget(bytes uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.budget = bytes
}

// Caps implements Device.
func (d *SoftwareDevice) Caps() Caps {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.caps
}

// Stats returns a snapshot of the device counters.
func (d *SoftwareDevice) Stats() DeviceStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// CreateIndexBuffer implements Device.
func (d *SoftwareDevice) CreateIndexBuffer(length uint32, usage Usage, format Format) (Resource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if length == 0 {
		return nil, fmt.Errorf("%w: zero-length buffer", ErrInvalidCall)
	}
	switch format {
	case FormatIndex16:
	case FormatIndex32:
		if !d.caps.Supports32BitIndices {
			return nil, fmt.Errorf("%w: %v not supported", ErrInvalidCall, format)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %v", ErrInvalidCall, format)
	}
	if d.caps.MaxIndexBufferSize != 0 && length > d.caps.MaxIndexBufferSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds device maximum %d",
			ErrOutOfVideoMemory, length, d.caps.MaxIndexBufferSize)
	}
	if d.budget != 0 && d.stats.BytesAllocated+uint64(length) > d.budget {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrOutOfVideoMemory, length, d.stats.BytesAllocated, d.budget)
	}

	d.stats.BuffersCreated++
	d.stats.BytesAllocated += uint64(length)
	return &softwareResource{
		device:  d,
		storage: make([]byte, length),
		usage:   usage,
		format:  format,
	}, nil
}

func (d *SoftwareDevice) recordLock(flags LockFlags) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Locks++
	if flags.Has(LockDiscard) {
		d.stats.DiscardLocks++
	}
	if flags.Has(LockNoOverwrite) {
		d.stats.NoOverwriteLocks++
	}
}

func (d *SoftwareDevice) recordOrphan() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Orphans++
}

func (d *SoftwareDevice) release(length uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.BuffersReleased++
	d.stats.BytesAllocated -= length
}

// softwareResource is a host-memory index buffer.
type softwareResource struct {
	device   *SoftwareDevice
	storage  []byte
	usage    Usage
	format   Format
	locked   bool
	released bool
}

// Lock implements Resource.
func (r *softwareResource) Lock(offset, size uint32, flags LockFlags) ([]byte, error) {
	if r.released {
		return nil, fmt.Errorf("%w: buffer released", ErrInvalidCall)
	}
	if r.locked {
		return nil, fmt.Errorf("%w: buffer already locked", ErrInvalidCall)
	}
	if (flags.Has(LockDiscard) || flags.Has(LockNoOverwrite)) && !r.usage.Has(UsageDynamic) {
		return nil, fmt.Errorf("%w: %v lock on a static buffer", ErrInvalidCall, flags)
	}

	length := uint64(len(r.storage))
	if offset == 0 && size == 0 {
		size = uint32(length)
	}
	end := uint64(offset) + uint64(size)
	if end > length {
		return nil, fmt.Errorf("%w: lock [%d, %d) beyond length %d", ErrInvalidCall, offset, end, length)
	}

	if flags.Has(LockDiscard) {
		r.storage = make([]byte, length)
		r.device.recordOrphan()
	}
	r.device.recordLock(flags)
	r.locked = true
	return r.storage[offset:end:end], nil
}

// Unlock implements Resource.
func (r *softwareResource) Unlock() error {
	if !r.locked {
		return fmt.Errorf("%w: buffer not locked", ErrInvalidCall)
	}
	r.locked = false
	return nil
}

// Release implements Resource.
func (r *softwareResource) Release() {
	if r.released {
		return
	}
	r.released = true
	r.device.release(uint64(len(r.storage)))
	r.storage = nil
}

// Contents returns the current storage of a resource created by a
// SoftwareDevice, for inspection in tests and tools. It returns nil for
// other resources.
func Contents(res Resource) []byte {
	if r, ok := res.(*softwareResource); ok {
		return r.storage
	}
	return nil
}
