// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ibstream"
)

// copyBufferAlignment is the WebGPU alignment for buffer sizes and
// queue write offsets.
const copyBufferAlignment uint64 = 4

// IndexBuffer is an ibstream.Buffer on a HAL device.
type IndexBuffer struct {
	device hal.Device
	queue  hal.Queue
	opts   rendererOptions

	buffer    hal.Buffer
	shadow    []byte
	size      uint64
	indexType ibstream.IndexType
	storage   ibstream.IndexType
	dynamic   bool
	serial    ibstream.Serial

	mapped    bool
	mapOffset uint64
	mapSize   uint64

	// retired holds orphaned buffers, oldest first, that submitted
	// commands may still read.
	retired []hal.Buffer
}

var _ ibstream.Buffer = (*IndexBuffer)(nil)

func newIndexBuffer(device hal.Device, queue hal.Queue, opts rendererOptions) *IndexBuffer {
	return &IndexBuffer{device: device, queue: queue, opts: opts}
}

// Initialize implements ibstream.Buffer.
//
// The previous HAL buffer, if any, is retired rather than destroyed, since
// draws submitted before a growth may still read it.
func (b *IndexBuffer) Initialize(size uint64, t ibstream.IndexType, dynamic bool) error {
	if b.buffer != nil {
		b.retire(b.buffer)
	}
	b.reset()

	storage, err := t.StorageType(b.opts.supports32)
	if err != nil {
		ibstream.Logger().Error("wgpu: unsupported index type", "type", t, "error", err)
		return err
	}
	if size == 0 {
		return &ibstream.AllocationError{Size: size, Err: ErrInvalidSize}
	}
	if size > b.opts.maxBufferSize || size > math.MaxUint64-copyBufferAlignment {
		return &ibstream.AllocationError{
			Size: size,
			Err:  fmt.Errorf("%w: limit %d", ErrBufferTooLarge, b.opts.maxBufferSize),
		}
	}

	aligned := alignUp(size)
	buf, err := b.createHALBuffer(aligned, dynamic)
	if err != nil {
		ibstream.Logger().Warn("wgpu: index buffer creation failed", "size", aligned, "error", err)
		return &ibstream.AllocationError{Size: size, Err: err}
	}

	b.buffer = buf
	b.shadow = make([]byte, aligned)
	b.size = size
	b.indexType = t
	b.storage = storage
	b.dynamic = dynamic
	b.serial = ibstream.NextSerial()
	return nil
}

// Map implements ibstream.Buffer. The returned slice aliases the CPU
// shadow and is uploaded by Unmap.
func (b *IndexBuffer) Map(offset, size uint64) ([]byte, error) {
	if b.buffer == nil {
		return nil, ibstream.ErrNotInitialized
	}
	if b.mapped {
		return nil, ibstream.ErrAlreadyMapped
	}
	if err := ibstream.CheckRange(offset, size, b.size); err != nil {
		return nil, err
	}

	b.mapped = true
	b.mapOffset = offset
	b.mapSize = size
	end := offset + size
	return b.shadow[offset:end:end], nil
}

// Unmap implements ibstream.Buffer.
func (b *IndexBuffer) Unmap() error {
	if !b.mapped {
		return ibstream.ErrNotMapped
	}
	b.mapped = false
	if b.mapSize == 0 {
		return nil
	}

	lo := b.mapOffset &^ (copyBufferAlignment - 1)
	hi := alignUp(b.mapOffset + b.mapSize)
	b.queue.WriteBuffer(b.buffer, lo, b.shadow[lo:hi])
	return nil
}

// Discard implements ibstream.Buffer. The serial is unchanged: the
// logical allocation is the same, only its backing store is new.
func (b *IndexBuffer) Discard() error {
	if b.buffer == nil {
		return ibstream.ErrNotInitialized
	}
	if b.mapped {
		return ibstream.ErrAlreadyMapped
	}

	fresh, err := b.createHALBuffer(uint64(len(b.shadow)), b.dynamic)
	if err != nil {
		return &ibstream.AllocationError{Size: b.size, Err: err}
	}

	b.retire(b.buffer)
	b.buffer = fresh
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

// Raw returns the HAL buffer to bind for drawing, or nil before
// initialization. The handle changes on every Discard.
func (b *IndexBuffer) Raw() hal.Buffer { return b.buffer }

// Retired returns the number of orphaned buffers awaiting destruction.
func (b *IndexBuffer) Retired() int { return len(b.retired) }

// Format returns the index format to bind Raw with.
func (b *IndexBuffer) Format() gputypes.IndexFormat {
	if b.storage == ibstream.IndexTypeUnsignedInt {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

// Release implements ibstream.Buffer.
func (b *IndexBuffer) Release() {
	b.destroyAll()
}

func (b *IndexBuffer) createHALBuffer(size uint64, dynamic bool) (hal.Buffer, error) {
	kind := "static"
	if dynamic {
		kind = "dynamic"
	}
	return b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.opts.labelPrefix + "-" + kind + "-index",
		Size:  size,
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
}

// retire queues buf for destruction and destroys the oldest retired
// buffers beyond the retire depth.
func (b *IndexBuffer) retire(buf hal.Buffer) {
	b.retired = append(b.retired, buf)
	for len(b.retired) > b.opts.retireDepth {
		b.device.DestroyBuffer(b.retired[0])
		b.retired[0] = nil
		b.retired = b.retired[1:]
	}
}

// destroyAll destroys the current and all retired buffers.
func (b *IndexBuffer) destroyAll() {
	for _, r := range b.retired {
		b.device.DestroyBuffer(r)
	}
	b.retired = nil
	if b.buffer != nil {
		b.device.DestroyBuffer(b.buffer)
	}
	b.reset()
}

// reset clears the allocation state. It does not touch HAL buffers.
func (b *IndexBuffer) reset() {
	b.buffer = nil
	b.shadow = nil
	b.size = 0
	b.indexType = ibstream.IndexTypeUnknown
	b.storage = ibstream.IndexTypeUnknown
	b.mapped = false
}

func alignUp(n uint64) uint64 {
	return (n + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)
}
