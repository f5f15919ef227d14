// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ibstream"
	"github.com/gogpu/ibstream/backend"
)

// Scenario describes a synthetic workload: every frame issues each draw
// once, streaming its indices or serving them from a static buffer.
type Scenario struct {
	Backend     string `toml:"backend"`
	Frames      int    `toml:"frames"`
	InitialSize uint64 `toml:"initial_size"`
	Uint32      bool   `toml:"uint32"`
	Draws       []Draw `toml:"draws"`
}

// Draw is one draw call of a Scenario.
type Draw struct {
	Type   string `toml:"type"`
	Count  uint64 `toml:"count"`
	Static bool   `toml:"static"`
	// Vertices bounds the generated index values.
	Vertices uint32 `toml:"vertices"`
}

func defaultScenario() Scenario {
	return Scenario{
		Backend:     backend.BackendSoftware,
		Frames:      60,
		InitialSize: ibstream.InitialStreamingBufferSize,
		Uint32:      true,
		Draws: []Draw{
			{Type: "u16", Count: 600, Vertices: 400},
			{Type: "u8", Count: 96, Vertices: 64},
			{Type: "u32", Count: 3000, Vertices: 100000},
			{Type: "u16", Count: 1200, Static: true, Vertices: 800},
		},
	}
}

func loadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()
	return decodeScenario(f)
}

func decodeScenario(r io.Reader) (Scenario, error) {
	s := defaultScenario()
	s.Draws = nil
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func (s Scenario) validate() error {
	if !backend.IsRegistered(s.Backend) {
		return fmt.Errorf("unknown backend %q, have %v", s.Backend, backend.Available())
	}
	if s.Frames <= 0 {
		return errors.New("frames must be positive")
	}
	if len(s.Draws) == 0 {
		return errors.New("scenario has no draws")
	}
	for i, d := range s.Draws {
		if _, err := parseIndexType(d.Type); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		if d.Count == 0 {
			return fmt.Errorf("draw %d: count must be positive", i)
		}
	}
	return nil
}

func parseIndexType(s string) (ibstream.IndexType, error) {
	switch s {
	case "u8":
		return ibstream.IndexTypeUnsignedByte, nil
	case "u16":
		return ibstream.IndexTypeUnsignedShort, nil
	case "u32":
		return ibstream.IndexTypeUnsignedInt, nil
	default:
		return ibstream.IndexTypeUnknown, fmt.Errorf("unknown index type %q", s)
	}
}
