// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/ibstream"
	"github.com/gogpu/ibstream/backend"
)

func init() {
	backend.Register(backend.BackendWGPU, openHeadless)
}

// openHeadless opens a renderer on the noop HAL device, which accepts
// every call and draws nothing.
func openHeadless(cfg backend.Config) (ibstream.Renderer, func(), error) {
	device, queue, cleanup, err := OpenNoopDevice()
	if err != nil {
		return nil, nil, err
	}
	var opts []Option
	if cfg.Without32BitIndices {
		opts = append(opts, WithoutUint32Indices())
	}
	r, err := NewRenderer(device, queue, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return r, cleanup, nil
}

// OpenNoopDevice opens a device on the noop HAL. The cleanup function
// destroys the device and its instance.
func OpenNoopDevice() (hal.Device, hal.Queue, func(), error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, errors.New("wgpu: no noop adapter")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup, nil
}
