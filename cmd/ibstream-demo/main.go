// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command ibstream-demo streams a synthetic index workload through one of
// the ibstream backends and reports buffer activity.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/gogpu/ibstream"
	"github.com/gogpu/ibstream/backend"
	_ "github.com/gogpu/ibstream/backend/lockable"
	_ "github.com/gogpu/ibstream/backend/wgpu"
	"github.com/gogpu/ibstream/metrics"
)

func main() {
	var (
		config      = flag.String("config", "", "TOML scenario file")
		backendName = flag.String("backend", "", "backend name (overrides the scenario)")
		frames      = flag.Int("frames", 0, "number of frames (overrides the scenario)")
		verbose     = flag.Bool("v", false, "log buffer events")
		dump        = flag.Bool("metrics", false, "print Prometheus metrics when done")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	ibstream.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s := defaultScenario()
	if *config != "" {
		var err error
		if s, err = loadScenario(*config); err != nil {
			log.Fatalf("Failed to load %s: %v", *config, err)
		}
	}
	if *backendName != "" {
		s.Backend = *backendName
	}
	if *frames > 0 {
		s.Frames = *frames
	}
	if err := s.validate(); err != nil {
		log.Fatalf("Invalid scenario: %v", err)
	}

	registry := prometheus.NewRegistry()
	report, err := run(s, metrics.NewMetrics(registry))
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	report.print(os.Stdout)

	if *dump {
		if err := writeMetrics(os.Stdout, registry); err != nil {
			log.Fatalf("Failed to write metrics: %v", err)
		}
	}
}

// report summarizes a run.
type report struct {
	backend   string
	frames    int
	draws     uint64
	indices   uint64
	reallocs  uint64
	discards  uint64
	rangeHits uint64
}

func (r report) print(w io.Writer) {
	fmt.Fprintf(w, "backend=%s frames=%d draws=%d indices=%d\n", r.backend, r.frames, r.draws, r.indices)
	fmt.Fprintf(w, "reallocations=%d discards=%d range_hits=%d\n", r.reallocs, r.discards, r.rangeHits)
}

func run(s Scenario, obs ibstream.Observer) (report, error) {
	renderer, cleanup, err := backend.Open(s.Backend, backend.Config{Without32BitIndices: !s.Uint32})
	if err != nil {
		return report{}, err
	}
	defer cleanup()

	m, err := ibstream.NewIndexDataManager(renderer,
		ibstream.WithObserver(obs), ibstream.WithInitialStreamingSize(s.InitialSize))
	if err != nil {
		return report{}, err
	}
	defer m.Release()

	sources := make([][]byte, len(s.Draws))
	statics := make([]*ibstream.StaticIndexBuffer, len(s.Draws))
	for i, d := range s.Draws {
		t, _ := parseIndexType(d.Type)
		sources[i] = generateIndices(t, d.Count, d.Vertices)
		if d.Static {
			statics[i] = m.NewStaticIndexBuffer(ibstream.WithLabel(fmt.Sprintf("static-%d", i)))
			defer statics[i].Release()
		}
	}

	rep := report{backend: s.Backend, frames: s.Frames}
	for frame := 0; frame < s.Frames; frame++ {
		for i, d := range s.Draws {
			t, _ := parseIndexType(d.Type)
			var err error
			if d.Static {
				_, err = m.PrepareStaticIndexData(statics[i], t, sources[i], 0, d.Count)
			} else {
				_, err = m.StreamIndexData(t, d.Count, sources[i])
			}
			if err != nil {
				return report{}, fmt.Errorf("frame %d draw %d: %w", frame, i, err)
			}
			rep.draws++
			rep.indices += d.Count
		}
	}

	for _, t := range []ibstream.IndexType{ibstream.IndexTypeUnsignedShort, ibstream.IndexTypeUnsignedInt} {
		if stream := m.StreamingBuffer(t); stream != nil {
			st := stream.Stats()
			rep.reallocs += st.Initializations
			rep.discards += st.Discards
		}
	}
	for _, st := range statics {
		if st != nil {
			rep.rangeHits += st.Stats().RangeHits
		}
	}
	return rep, nil
}

// generateIndices builds a triangle-fan-like index list below vertices.
func generateIndices(t ibstream.IndexType, count uint64, vertices uint32) []byte {
	if vertices == 0 || vertices > t.MaxValue() {
		vertices = t.MaxValue()
	}
	out := make([]byte, count*t.Size())
	for i := uint64(0); i < count; i++ {
		v := uint32((i*7 + i/3) % uint64(vertices))
		switch t {
		case ibstream.IndexTypeUnsignedByte:
			out[i] = byte(v)
		case ibstream.IndexTypeUnsignedShort:
			binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
		default:
			binary.LittleEndian.PutUint32(out[i*4:], v)
		}
	}
	return out
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
