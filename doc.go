// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ibstream streams index data into GPU index buffers.
//
// # Overview
//
// ibstream sits between a draw-call issuer and a native graphics device.
// The issuer pushes index data once, through one API, while a backend
// owns and maps the underlying GPU memory. Two backends ship with the
// module:
//
//   - backend/wgpu: index buffers on a gogpu/wgpu HAL device
//   - backend/lockable: index buffers on a lock-based device model with
//     discard and no-overwrite hints
//
// # Allocators
//
// A [DynamicIndexBuffer] is refilled every frame. It grows geometrically
// and recycles space by discarding (orphaning) its backing store and
// rewinding to offset 0, so the GPU never stalls on data it is still
// reading.
//
// A [StaticIndexBuffer] is sized exactly once and never grows. It carries
// a range cache keyed by (source offset, element count) so repeated draw
// calls can reuse ranges that were already uploaded.
//
// # Quick Start
//
//	renderer := lockable.NewRenderer(lockable.NewSoftwareDevice(lockable.DefaultCaps()))
//	ib := ibstream.NewDynamicIndexBuffer(renderer)
//	defer ib.Release()
//
//	if err := ib.ReserveBufferSpace(6*2, ibstream.IndexTypeUnsignedShort); err != nil {
//	    return err
//	}
//	data, offset, err := ib.MapBuffer(6 * 2)
//	if err != nil {
//	    return err
//	}
//	// write six uint16 indices into data
//	if err := ib.UnmapBuffer(); err != nil {
//	    return err
//	}
//	// draw with base index offset / 2
//
// Most callers use [IndexDataManager], which converts client index data,
// computes index bounds and picks the right buffer.
//
// # Threading
//
// Buffers are not safe for concurrent use. All operations on a buffer must
// run on the goroutine that owns the graphics device. The serial counter
// and the package logger are the only shared state.
package ibstream
