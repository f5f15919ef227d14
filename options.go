// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

// Option configures an index buffer or an IndexDataManager.
//
// Example:
//
//	ib := ibstream.NewStaticIndexBuffer(renderer,
//	    ibstream.WithLabel("terrain"),
//	    ibstream.WithRangeCacheLimit(1024))
type Option func(*options)

type options struct {
	label           string
	observer        Observer
	rangeCacheLimit int
	initialSize     uint64
}

func defaultOptions() options {
	return options{
		observer:    nopObserver{},
		initialSize: InitialStreamingBufferSize,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLabel sets the label used in log records and reported to the
// Observer.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithObserver installs an Observer. A nil observer restores the default
// no-op observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = nopObserver{}
		}
		o.observer = obs
	}
}

// WithRangeCacheLimit bounds the static range cache to n entries with LRU
// eviction. The default is unbounded.
//
// A bounded cache changes behavior: an evicted range is recomputed and its
// bounds re-derived on the next draw that uses it. Static buffers hold
// every uploaded range regardless, so eviction never forces a re-upload
// of index data, only a recomputation of its bounds.
func WithRangeCacheLimit(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.rangeCacheLimit = n
	}
}

// WithInitialStreamingSize sets how many bytes an IndexDataManager reserves
// up front in each streaming buffer. Zero defers allocation to the first
// draw.
func WithInitialStreamingSize(size uint64) Option {
	return func(o *options) {
		o.initialSize = size
	}
}
