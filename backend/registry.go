// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/gogpu/ibstream"
)

// Backend names.
const (
	BackendWGPU     = "wgpu"
	BackendSoftware = "software"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Config carries the settings every backend understands.
type Config struct {
	// Without32BitIndices makes the renderer report no 32-bit index
	// support even when the device has it.
	Without32BitIndices bool
}

// Factory opens a renderer. On success the returned close function
// releases the device and is never nil.
type Factory func(cfg Config) (ibstream.Renderer, func(), error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens the backend registered under name.
func Open(name string, cfg Config) (ibstream.Renderer, func(), error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	r, closeFn, err := factory(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	return r, closeFn, nil
}

// Default opens the best available backend based on priority and returns
// its name. Backends that fail to open are skipped.
func Default(cfg Config) (string, ibstream.Renderer, func(), error) {
	for _, name := range order() {
		r, closeFn, err := Open(name, cfg)
		if err != nil {
			ibstream.Logger().Warn("backend: skipping", "backend", name, "error", err)
			continue
		}
		return name, r, closeFn, nil
	}
	return "", nil, nil, ErrBackendNotAvailable
}

// order returns the registered names, prioritized ones first.
func order() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(backends))
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
