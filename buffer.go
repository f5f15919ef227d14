// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

// Buffer is the contract every native index buffer backend implements.
//
// A Buffer owns exactly one native buffer resource. A Buffer with Size 0
// holds no native resource. Each successful Initialize assigns a fresh
// Serial. Buffers are not safe for concurrent use.
type Buffer interface {
	// Initialize releases any prior native resource and allocates size
	// bytes of storage for indices of type t. Dynamic buffers are tagged
	// for frequent CPU writes. Failures are reported as *AllocationError
	// or ErrUnsupportedFormat, after which the buffer holds no storage.
	Initialize(size uint64, t IndexType, dynamic bool) error

	// Map returns a writable view of [offset, offset+size). The range is
	// validated with CheckRange before any native call is issued.
	Map(offset, size uint64) ([]byte, error)

	// Unmap ends the current mapping. The region may be consumed by a
	// draw call only after Unmap returns.
	Unmap() error

	// Discard asks the device to give the buffer fresh backing storage so
	// that new writes never wait on GPU reads of the previous contents.
	Discard() error

	// Resize reinitializes the buffer when size exceeds the current
	// capacity or t differs from the current type. Otherwise it does
	// nothing; buffers never shrink in place.
	Resize(size uint64, t IndexType) error

	// Size returns the capacity in bytes.
	Size() uint64

	// IndexType returns the logical index type recorded at initialization.
	IndexType() IndexType

	// Serial returns the serial of the current allocation.
	Serial() Serial

	// Dynamic reports whether the current allocation is tagged for
	// streaming.
	Dynamic() bool

	// Release destroys the native resource. The buffer is unusable
	// afterwards.
	Release()
}

// Renderer is the device-side capability the allocators consume.
type Renderer interface {
	// CreateIndexBuffer returns a zero-capacity buffer bound to the
	// renderer's device.
	CreateIndexBuffer() Buffer

	// Supports32BitIndices reports whether the device has a native 32-bit
	// index format.
	Supports32BitIndices() bool
}

// IndexBuffer is what a draw-call issuer sees of an allocator.
type IndexBuffer interface {
	ReserveBufferSpace(size uint64, t IndexType) error
	MapBuffer(size uint64) (data []byte, offset uint64, err error)
	UnmapBuffer() error
	Serial() Serial
	Size() uint64
	IndexType() IndexType
	Buffer() Buffer
	Release()
}

var (
	_ IndexBuffer = (*DynamicIndexBuffer)(nil)
	_ IndexBuffer = (*StaticIndexBuffer)(nil)
)
