// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects an index buffer backend by name.
//
// Backend packages register a Factory from init(), so importing them is
// enough to make them available:
//
//	import (
//		_ "github.com/gogpu/ibstream/backend/lockable"
//		_ "github.com/gogpu/ibstream/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default to open the best available backend, or Open to request one
// by name:
//
//	r, closeFn, err := backend.Open(backend.BackendSoftware, backend.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer closeFn()
//
//	m, err := ibstream.NewIndexDataManager(r)
//
// # Available Backends
//
//   - "wgpu": gogpu/wgpu HAL buffers on a headless noop device
//   - "software": the lock-based model on host memory (always available
//     once backend/lockable is imported)
//
// Applications that own a GPU device construct backend/wgpu renderers
// directly; the registry is meant for tools and tests.
package backend
