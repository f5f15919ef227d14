// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import (
	"github.com/gogpu/ibstream"
	"github.com/gogpu/ibstream/backend"
)

func init() {
	backend.Register(backend.BackendSoftware, openSoftware)
}

// openSoftware opens a SoftwareDevice with DefaultCaps.
func openSoftware(cfg backend.Config) (ibstream.Renderer, func(), error) {
	caps := DefaultCaps()
	if cfg.Without32BitIndices {
		caps.Supports32BitIndices = false
	}
	return NewRenderer(NewSoftwareDevice(caps)), func() {}, nil
}
