// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports index buffer activity as Prometheus metrics.
//
// Metrics implements ibstream.Observer; pass it to allocators or an
// IndexDataManager with ibstream.WithObserver. Every series carries the
// allocator label as its "buffer" label.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogpu/ibstream"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	Initializations *prometheus.CounterVec
	Discards        *prometheus.CounterVec
	Maps            *prometheus.CounterVec
	MappedBytes     *prometheus.CounterVec
	RangeLookups    *prometheus.CounterVec
	Capacity        *prometheus.GaugeVec
}

var _ ibstream.Observer = (*Metrics)(nil)

// NewMetrics creates and registers all metrics with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Initializations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ibstream_buffer_initializations_total",
				Help: "Total number of index buffer allocations, including growth and retyping",
			},
			[]string{"buffer"},
		),
		Discards: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ibstream_buffer_discards_total",
				Help: "Total number of times an index buffer orphaned its storage",
			},
			[]string{"buffer"},
		),
		Maps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ibstream_buffer_maps_total",
				Help: "Total number of successful index buffer maps",
			},
			[]string{"buffer"},
		),
		MappedBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ibstream_buffer_mapped_bytes_total",
				Help: "Total bytes mapped for writing",
			},
			[]string{"buffer"},
		),
		RangeLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ibstream_range_cache_lookups_total",
				Help: "Total number of static range cache lookups",
			},
			[]string{"buffer", "result"},
		),
		Capacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ibstream_buffer_capacity_bytes",
				Help: "Current capacity of each index buffer",
			},
			[]string{"buffer"},
		),
	}
}

// BufferInitialized implements ibstream.Observer.
func (m *Metrics) BufferInitialized(label string, _, newSize uint64) {
	m.Initializations.WithLabelValues(label).Inc()
	m.Capacity.WithLabelValues(label).Set(float64(newSize))
}

// BufferDiscarded implements ibstream.Observer.
func (m *Metrics) BufferDiscarded(label string) {
	m.Discards.WithLabelValues(label).Inc()
}

// BufferMapped implements ibstream.Observer.
func (m *Metrics) BufferMapped(label string, size uint64) {
	m.Maps.WithLabelValues(label).Inc()
	m.MappedBytes.WithLabelValues(label).Add(float64(size))
}

// RangeLookup implements ibstream.Observer.
func (m *Metrics) RangeLookup(label string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RangeLookups.WithLabelValues(label, result).Inc()
}
