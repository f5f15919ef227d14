// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import "sync/atomic"

// Serial identifies one physical allocation of a buffer.
//
// A backend buffer receives a fresh serial every time it is initialized,
// so callers can tell "same buffer object, new storage" apart from "same
// storage". Serials are never reused and never reclaimed; they are only
// compared for identity.
type Serial uint64

// NoSerial is held by buffers that have never been initialized.
const NoSerial Serial = 0

// serialCounter is the process-wide source of serials. It starts at zero
// and is only ever incremented, so the first issued serial is 1.
var serialCounter atomic.Uint64

// NextSerial returns a new, process-unique serial.
func NextSerial() Serial {
	return Serial(serialCounter.Add(1))
}
