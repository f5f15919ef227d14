// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"errors"
	"fmt"
)

// Buffer errors.
var (
	// ErrOutOfMemory is returned when a native buffer cannot be created or
	// grown. It is always wrapped in an *AllocationError.
	ErrOutOfMemory = errors.New("ibstream: out of memory")

	// ErrInvalidRange is returned when a map request is out of bounds or
	// its end offset overflows. It is always wrapped in a *RangeError.
	ErrInvalidRange = errors.New("ibstream: invalid buffer range")

	// ErrNotInitialized is returned when mapping a buffer that has no
	// storage yet.
	ErrNotInitialized = errors.New("ibstream: buffer has no storage")

	// ErrUnsupportedFormat is returned when 32-bit indices are requested on
	// a device without native support, or the index type is invalid.
	ErrUnsupportedFormat = errors.New("ibstream: unsupported index format")

	// ErrStaticResize is returned when a static buffer is asked to grow or
	// change its index type after its first allocation.
	ErrStaticResize = errors.New("ibstream: static index buffer cannot be resized")

	// ErrAlreadyMapped is returned when mapping a buffer that is mapped.
	ErrAlreadyMapped = errors.New("ibstream: buffer is already mapped")

	// ErrNotMapped is returned when unmapping a buffer that is not mapped.
	ErrNotMapped = errors.New("ibstream: buffer is not mapped")

	// ErrReleased is returned when operating on a released buffer.
	ErrReleased = errors.New("ibstream: buffer has been released")

	// ErrNilRenderer is returned when a manager is created without a renderer.
	ErrNilRenderer = errors.New("ibstream: renderer is nil")
)

// AllocationError reports a failed native allocation together with the
// size that was requested.
type AllocationError struct {
	Size uint64
	Err  error
}

func (e *AllocationError) Error() string {
	if e.Err == nil || e.Err == ErrOutOfMemory {
		return fmt.Sprintf("ibstream: out of memory allocating %d bytes", e.Size)
	}
	return fmt.Sprintf("ibstream: out of memory allocating %d bytes: %v", e.Size, e.Err)
}

// Unwrap lets errors.Is match both ErrOutOfMemory and the native cause.
func (e *AllocationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrOutOfMemory {
		return []error{ErrOutOfMemory}
	}
	return []error{ErrOutOfMemory, e.Err}
}

// RangeError reports a map request that does not fit the buffer.
type RangeError struct {
	Offset   uint64
	Size     uint64
	Capacity uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("ibstream: invalid buffer range: offset %d + size %d exceeds capacity %d",
		e.Offset, e.Size, e.Capacity)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// MisuseError reports a violation of a buffer's usage contract. It means
// the caller is wrong, not the environment.
type MisuseError struct {
	Op  string
	Err error
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("ibstream: %s: %v", e.Op, e.Err)
}

func (e *MisuseError) Unwrap() error { return e.Err }

// CheckRange validates that [offset, offset+size) lies within capacity.
// The end offset is compared for wraparound before it is compared against
// capacity, so a corrupted offset is never computed.
func CheckRange(offset, size, capacity uint64) error {
	end := offset + size
	if end < offset || end > capacity {
		return &RangeError{Offset: offset, Size: size, Capacity: capacity}
	}
	return nil
}
