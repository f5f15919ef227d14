// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic LRU map for single-owner use.
//
//	c := cache.NewLRU[key, value](256)
//	c.Put(k, v)
//	v, ok := c.Get(k)
//
// A limit of 0 disables eviction, turning the LRU into a plain map that
// still tracks recency.
//
// # Thread Safety
//
// LRU is not safe for concurrent use. It is owned by exactly one index
// buffer, which is itself confined to the device goroutine.
package cache
