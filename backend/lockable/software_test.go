// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lockable

import (
	"errors"
	"testing"
)

func TestSoftwareDeviceCreate(t *testing.T) {
	tests := []struct {
		name    string
		caps    Caps
		length  uint32
		format  Format
		wantErr error
	}{
		{"index16", DefaultCaps(), 64, FormatIndex16, nil},
		{"index32", DefaultCaps(), 64, FormatIndex32, nil},
		{"index32 unsupported", Caps{}, 64, FormatIndex32, ErrInvalidCall},
		{"zero length", DefaultCaps(), 0, FormatIndex16, ErrInvalidCall},
		{"unknown format", DefaultCaps(), 8, Format(7), ErrInvalidCall},
		{"over device max", Caps{MaxIndexBufferSize: 32}, 64, FormatIndex16, ErrOutOfVideoMemory},
		{"at device max", Caps{MaxIndexBufferSize: 64}, 64, FormatIndex16, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSoftwareDevice(tt.caps)
			res, err := d.CreateIndexBuffer(tt.length, UsageWriteOnly, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if d.Stats().BuffersCreated != 0 {
					t.Error("failed creation must not count a buffer")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(Contents(res)) != int(tt.length) {
				t.Errorf("storage length = %d, want %d", len(Contents(res)), tt.length)
			}
			if d.Stats().BytesAllocated != uint64(tt.length) {
				t.Errorf("BytesAllocated = %d, want %d", d.Stats().BytesAllocated, tt.length)
			}
		})
	}
}

func TestSoftwareDeviceBudget(t *testing.T) {
	d := NewSoftwareDevice(DefaultCaps())
	d.SetBudget(100)

	a, err := d.CreateIndexBuffer(60, UsageWriteOnly, FormatIndex16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateIndexBuffer(60, UsageWriteOnly, FormatIndex16); !errors.Is(err, ErrOutOfVideoMemory) {
		t.Fatalf("over budget error = %v, want ErrOutOfVideoMemory", err)
	}

	a.Release()
	a.Release()
	if _, err := d.CreateIndexBuffer(60, UsageWriteOnly, FormatIndex16); err != nil {
		t.Fatalf("after release: %v", err)
	}
	st := d.Stats()
	if st.BuffersCreated != 2 || st.BuffersReleased != 1 || st.BytesAllocated != 60 {
		t.Errorf("Stats() = %+v", st)
	}

	d.SetBudget(0)
	if _, err := d.CreateIndexBuffer(1000, UsageWriteOnly, FormatIndex16); err != nil {
		t.Errorf("unlimited budget: %v", err)
	}
}

func TestSoftwareResourceLock(t *testing.T) {
	d := NewSoftwareDevice(DefaultCaps())
	res, err := d.CreateIndexBuffer(16, UsageWriteOnly|UsageDynamic, FormatIndex16)
	if err != nil {
		t.Fatal(err)
	}

	data, err := res.Lock(4, 8, LockNoOverwrite)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 8 || cap(data) != 8 {
		t.Errorf("locked slice len=%d cap=%d, want 8 and 8", len(data), cap(data))
	}
	data[0] = 0xAB
	if _, err := res.Lock(0, 1, 0); !errors.Is(err, ErrInvalidCall) {
		t.Errorf("double lock error = %v", err)
	}
	if err := res.Unlock(); err != nil {
		t.Fatal(err)
	}
	if err := res.Unlock(); !errors.Is(err, ErrInvalidCall) {
		t.Errorf("double unlock error = %v", err)
	}
	if Contents(res)[4] != 0xAB {
		t.Error("write through lock was lost")
	}

	whole, err := res.Lock(0, 0, 0)
	if err != nil || len(whole) != 16 {
		t.Fatalf("whole-buffer lock len=%d err=%v", len(whole), err)
	}
	_ = res.Unlock()

	if _, err := res.Lock(10, 8, 0); !errors.Is(err, ErrInvalidCall) {
		t.Errorf("out of bounds lock error = %v", err)
	}

	// Discard hands out fresh storage and leaves the old contents behind.
	old := Contents(res)
	if _, err := res.Lock(0, 1, LockDiscard); err != nil {
		t.Fatal(err)
	}
	_ = res.Unlock()
	if Contents(res)[4] != 0 || old[4] != 0xAB {
		t.Error("discard must orphan the old storage")
	}

	st := d.Stats()
	if st.Locks != 3 || st.DiscardLocks != 1 || st.NoOverwriteLocks != 1 || st.Orphans != 1 {
		t.Errorf("Stats() = %+v", st)
	}

	res.Release()
	if _, err := res.Lock(0, 1, 0); !errors.Is(err, ErrInvalidCall) {
		t.Errorf("lock after release error = %v", err)
	}
}

func TestSoftwareResourceStaticRejectsHints(t *testing.T) {
	d := NewSoftwareDevice(DefaultCaps())
	res, err := d.CreateIndexBuffer(16, UsageWriteOnly, FormatIndex16)
	if err != nil {
		t.Fatal(err)
	}
	for _, flags := range []LockFlags{LockDiscard, LockNoOverwrite} {
		if _, err := res.Lock(0, 4, flags); !errors.Is(err, ErrInvalidCall) {
			t.Errorf("%v on static buffer error = %v, want ErrInvalidCall", flags, err)
		}
	}
}

func TestLockFlagsString(t *testing.T) {
	tests := []struct {
		flags LockFlags
		want  string
	}{
		{0, "None"},
		{LockDiscard, "Discard"},
		{LockNoOverwrite, "NoOverwrite"},
		{LockDiscard | LockNoOverwrite, "Discard|NoOverwrite"},
		{LockFlags(8), "LockFlags(0x8)"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("LockFlags(%d).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
	if FormatIndex16.String() != "Index16" || FormatIndex32.String() != "Index32" || Format(0).String() != "Format(0)" {
		t.Error("Format.String mismatch")
	}
}
