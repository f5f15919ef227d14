// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import (
	"fmt"
	"math"

	"github.com/gogpu/ibstream"
)

// IndexBuffer is an ibstream.Buffer on a lock-based Device.
//
// Dynamic buffers are created with UsageDynamic and mapped with
// LockNoOverwrite; the streaming allocator only ever appends past data that
// earlier draws read, and discards before it wraps. Discard issues a
// one-byte LockDiscard lock and unlocks it immediately.
type IndexBuffer struct {
	device Device

	resource  Resource
	size      uint64
	indexType ibstream.IndexType
	format    Format
	dynamic   bool
	serial    ibstream.Serial

	mapped bool
	locked bool
}

var _ ibstream.Buffer = (*IndexBuffer)(nil)

// NewIndexBuffer returns a zero-capacity buffer bound to device.
func NewIndexBuffer(device Device) *IndexBuffer {
	return &IndexBuffer{device: device}
}

// Initialize implements ibstream.Buffer.
func (b *IndexBuffer) Initialize(size uint64, t ibstream.IndexType, dynamic bool) error {
	b.releaseResource()

	storage, err := t.StorageType(b.device.Caps().Supports32BitIndices)
	if err != nil {
		ibstream.Logger().Error("lockable: unsupported index type", "type", t, "error", err)
		return err
	}
	if size == 0 {
		return &ibstream.AllocationError{Size: size, Err: fmt.Errorf("%w: zero-length buffer", ErrInvalidCall)}
	}
	if size > math.MaxUint32 {
		return &ibstream.AllocationError{Size: size, Err: ErrBufferTooLarge}
	}

	usage := UsageWriteOnly
	if dynamic {
		usage |= UsageDynamic
	}
	format := FormatIndex16
	if storage == ibstream.IndexTypeUnsignedInt {
		format = FormatIndex32
	}

	res, err := b.device.CreateIndexBuffer(uint32(size), usage, format)
	if err != nil {
		ibstream.Logger().Warn("lockable: index buffer creation failed", "size", size, "error", err)
		return &ibstream.AllocationError{Size: size, Err: err}
	}

	b.resource = res
	b.size = size
	b.indexType = t
	b.format = format
	b.dynamic = dynamic
	b.serial = ibstream.NextSerial()
	return nil
}

// Map implements ibstream.Buffer.
func (b *IndexBuffer) Map(offset, size uint64) ([]byte, error) {
	if b.resource == nil {
		return nil, ibstream.ErrNotInitialized
	}
	if b.mapped {
		return nil, ibstream.ErrAlreadyMapped
	}
	if err := ibstream.CheckRange(offset, size, b.size); err != nil {
		return nil, err
	}

	// A zero-sized lock means "whole buffer" to the device.
	if size == 0 {
		b.mapped = true
		return []byte{}, nil
	}

	var flags LockFlags
	if b.dynamic {
		flags = LockNoOverwrite
	}
	data, err := b.resource.Lock(uint32(offset), uint32(size), flags)
	if err != nil {
		return nil, fmt.Errorf("lockable: lock %d bytes at %d: %w", size, offset, err)
	}
	b.mapped = true
	b.locked = true
	return data, nil
}

// Unmap implements ibstream.Buffer.
func (b *IndexBuffer) Unmap() error {
	if !b.mapped {
		return ibstream.ErrNotMapped
	}
	b.mapped = false
	if !b.locked {
		return nil
	}
	b.locked = false
	if err := b.resource.Unlock(); err != nil {
		return fmt.Errorf("lockable: unlock: %w", err)
	}
	return nil
}

// Discard implements ibstream.Buffer.
func (b *IndexBuffer) Discard() error {
	if b.resource == nil {
		return ibstream.ErrNotInitialized
	}
	if b.mapped {
		return ibstream.ErrAlreadyMapped
	}
	if _, err := b.resource.Lock(0, 1, LockDiscard); err != nil {
		return fmt.Errorf("lockable: discard lock: %w", err)
	}
	if err := b.resource.Unlock(); err != nil {
		return fmt.Errorf("lockable: discard unlock: %w", err)
	}
	return nil
}

// Resize implements ibstream.Buffer.
func (b *IndexBuffer) Resize(size uint64, t ibstream.IndexType) error {
	if size > b.size || t != b.indexType {
		return b.Initialize(size, t, b.dynamic)
	}
	return nil
}

// Size implements ibstream.Buffer.
func (b *IndexBuffer) Size() uint64 { return b.size }

// IndexType implements ibstream.Buffer.
func (b *IndexBuffer) IndexType() ibstream.IndexType { return b.indexType }

// Serial implements ibstream.Buffer.
func (b *IndexBuffer) Serial() ibstream.Serial { return b.serial }

// Dynamic implements ibstream.Buffer.
func (b *IndexBuffer) Dynamic() bool { return b.dynamic }

// Format returns the native index format, or 0 before initialization.
func (b *IndexBuffer) Format() Format { return b.format }

// Resource returns the native resource, or nil before initialization.
func (b *IndexBuffer) Resource() Resource { return b.resource }

// Release implements ibstream.Buffer.
func (b *IndexBuffer) Release() {
	b.releaseResource()
}

func (b *IndexBuffer) releaseResource() {
	if b.resource == nil {
		return
	}
	if b.locked {
		_ = b.resource.Unlock()
	}
	b.resource.Release()
	b.resource = nil
	b.size = 0
	b.indexType = ibstream.IndexTypeUnknown
	b.format = 0
	b.mapped = false
	b.locked = false
}
