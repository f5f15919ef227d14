// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import "github.com/gogpu/ibstream"

// Renderer creates lockable index buffers on one Device.
type Renderer struct {
	device Device
}

var _ ibstream.Renderer = (*Renderer)(nil)

// NewRenderer returns a Renderer for device.
func NewRenderer(device Device) *Renderer {
	return &Renderer{device: device}
}

// CreateIndexBuffer implements ibstream.Renderer.
func (r *Renderer) CreateIndexBuffer() ibstream.Buffer {
	return NewIndexBuffer(r.device)
}

// Supports32BitIndices implements ibstream.Renderer.
func (r *Renderer) Supports32BitIndices() bool {
	return r.device.Caps().Supports32BitIndices
}

// Device returns the underlying device.
func (r *Renderer) Device() Device {
	return r.device
}
