// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lockable implements ibstream index buffers on a lock-based
// device model.
//
// A lock-based device hands out CPU pointers to buffer memory through
// Lock/Unlock pairs and accepts two hints on each lock:
//
//   - LockDiscard: the previous contents are no longer needed, so the
//     driver may hand out fresh storage instead of waiting for the GPU.
//   - LockNoOverwrite: the caller will not touch regions the GPU may still
//     be reading, so the driver may skip synchronization.
//
// Buffer lengths are 32-bit, and 32-bit index formats are an optional
// device capability.
//
// SoftwareDevice is a host-memory Device that models orphaning and budget
// exhaustion. It backs tests and headless tools.
package lockable
