// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import (
	"errors"
	"fmt"
)

// Device errors.
var (
	// ErrOutOfVideoMemory is returned when the device cannot allocate a
	// buffer.
	ErrOutOfVideoMemory = errors.New("lockable: out of video memory")

	// ErrInvalidCall is returned for requests the device rejects outright.
	ErrInvalidCall = errors.New("lockable: invalid call")

	// ErrBufferTooLarge is returned when a size does not fit the device's
	// 32-bit buffer lengths.
	ErrBufferTooLarge = errors.New("lockable: buffer exceeds 32-bit length")
)

// Usage flags fixed when a buffer is created.
type Usage uint32

const (
	// UsageWriteOnly promises the CPU never reads the buffer back.
	UsageWriteOnly Usage = 1 << iota

	// UsageDynamic places the buffer where frequent CPU writes are cheap
	// and allows LockDiscard and LockNoOverwrite.
	UsageDynamic
)

// Has reports whether u contains all flags in f.
func (u Usage) Has(f Usage) bool { return u&f == f }

// LockFlags are hints passed to Resource.Lock.
type LockFlags uint32

const (
	// LockDiscard orphans the whole buffer and returns fresh storage.
	LockDiscard LockFlags = 1 << iota

	// LockNoOverwrite promises not to touch data in use by the GPU.
	LockNoOverwrite
)

// Has reports whether l contains all flags in f.
func (l LockFlags) Has(f LockFlags) bool { return l&f == f }

// String returns a readable form of the flags.
func (l LockFlags) String() string {
	switch l {
	case 0:
		return "None"
	case LockDiscard:
		return "Discard"
	case LockNoOverwrite:
		return "NoOverwrite"
	case LockDiscard | LockNoOverwrite:
		return "Discard|NoOverwrite"
	default:
		return fmt.Sprintf("LockFlags(%#x)", uint32(l))
	}
}

// Format is a native index format.
type Format uint8

const (
	// FormatIndex16 stores 16-bit indices.
	FormatIndex16 Format = iota + 1

	// FormatIndex32 stores 32-bit indices.
	FormatIndex32
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatIndex16:
		return "Index16"
	case FormatIndex32:
		return "Index32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Caps describes what a device supports.
type Caps struct {
	// Supports32BitIndices reports whether FormatIndex32 is available.
	Supports32BitIndices bool

	// MaxIndexBufferSize caps the length of one buffer. Zero means only
	// the 32-bit length limit applies.
	MaxIndexBufferSize uint32
}

// DefaultCaps returns the capabilities of a typical modern device.
func DefaultCaps() Caps {
	return Caps{Supports32BitIndices: true}
}

// Device creates lockable index buffers.
type Device interface {
	// Caps returns the device capabilities.
	Caps() Caps

	// CreateIndexBuffer allocates length bytes of index storage.
	CreateIndexBuffer(length uint32, usage Usage, format Format) (Resource, error)
}

// Resource is one native index buffer.
type Resource interface {
	// Lock returns a CPU view of [offset, offset+size). A zero offset and
	// size lock the whole buffer.
	Lock(offset, size uint32, flags LockFlags) ([]byte, error)

	// Unlock releases the view returned by Lock.
	Unlock() error

	// Release frees the resource.
	Release()
}
