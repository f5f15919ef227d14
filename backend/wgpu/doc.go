// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements ibstream index buffers on a gogpu/wgpu HAL
// device.
//
// WebGPU buffers cannot be mapped for writing while the GPU may use them,
// so each IndexBuffer keeps a CPU shadow of its storage. Map hands out a
// slice of the shadow; Unmap uploads the written span with
// hal.Queue.WriteBuffer, widened to the 4-byte copy alignment.
//
// Discard orphans the buffer by swapping in a freshly created hal.Buffer
// of the same size. The replaced buffer may still be referenced by
// submitted command buffers, so it is retired and destroyed only after a
// configurable number of later retirements (WithRetireDepth). Buffers
// replaced by growth or retyping are retired the same way.
//
// The package registers a "wgpu" backend on a headless noop device with
// package backend; applications with their own device use NewRenderer or
// NewRendererFromProvider.
//
// Usage with a host-provided device:
//
//	renderer, err := wgpu.NewRendererFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	mgr, err := ibstream.NewIndexDataManager(renderer)
package wgpu
