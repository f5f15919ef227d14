// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "errors"

// Backend errors.
var (
	// ErrNilDevice is returned when a renderer is created without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrNilQueue is returned when a renderer is created without a queue.
	ErrNilQueue = errors.New("wgpu: queue is nil")

	// ErrNoHALAccess is returned when a device provider does not expose
	// HAL types.
	ErrNoHALAccess = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrBufferTooLarge is returned when a size exceeds the device's
	// maximum buffer size.
	ErrBufferTooLarge = errors.New("wgpu: buffer exceeds device limit")

	// ErrInvalidSize is returned for zero-sized buffers.
	ErrInvalidSize = errors.New("wgpu: invalid buffer size")
)
