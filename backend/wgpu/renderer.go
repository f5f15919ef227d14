// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ibstream"
)

// DefaultRetireDepth is how many discards an orphaned buffer survives
// before it is destroyed. It matches the usual number of frames in flight.
const DefaultRetireDepth = 2

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	maxBufferSize uint64
	retireDepth   int
	supports32    bool
	labelPrefix   string
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		maxBufferSize: gputypes.DefaultLimits().MaxBufferSize,
		retireDepth:   DefaultRetireDepth,
		supports32:    true,
		labelPrefix:   "ibstream",
	}
}

// WithLimits takes the maximum buffer size from the device limits.
func WithLimits(limits gputypes.Limits) Option {
	return func(o *rendererOptions) {
		o.maxBufferSize = limits.MaxBufferSize
	}
}

// WithMaxBufferSize overrides the maximum size of one index buffer.
func WithMaxBufferSize(size uint64) Option {
	return func(o *rendererOptions) {
		o.maxBufferSize = size
	}
}

// WithRetireDepth sets how many discards an orphaned buffer survives.
// Zero destroys orphaned buffers immediately, which is only safe when
// nothing submitted still references them.
func WithRetireDepth(n int) Option {
	return func(o *rendererOptions) {
		if n < 0 {
			n = 0
		}
		o.retireDepth = n
	}
}

// WithoutUint32Indices makes the renderer report no 32-bit index support,
// for targets that must run on downlevel hardware.
func WithoutUint32Indices() Option {
	return func(o *rendererOptions) {
		o.supports32 = false
	}
}

// WithLabelPrefix sets the prefix of HAL buffer debug labels.
func WithLabelPrefix(prefix string) Option {
	return func(o *rendererOptions) {
		o.labelPrefix = prefix
	}
}

// Renderer creates index buffers on one HAL device.
//
// Key principle: the renderer RECEIVES the device from the host, it does
// not create one, and never destroys it.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   rendererOptions
}

var _ ibstream.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer on device and queue.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{device: device, queue: queue, opts: o}, nil
}

// NewRendererFromProvider creates a renderer on a device shared by the
// host application. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewRendererFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return NewRenderer(device, queue, opts...)
}

// CreateIndexBuffer implements ibstream.Renderer.
func (r *Renderer) CreateIndexBuffer() ibstream.Buffer {
	return newIndexBuffer(r.device, r.queue, r.opts)
}

// Supports32BitIndices implements ibstream.Renderer.
func (r *Renderer) Supports32BitIndices() bool {
	return r.opts.supports32
}

// MaxBufferSize returns the largest index buffer the renderer creates.
func (r *Renderer) MaxBufferSize() uint64 {
	return r.opts.maxBufferSize
}
