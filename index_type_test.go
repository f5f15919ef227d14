// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"errors"
	"testing"
)

func TestIndexTypeSizes(t *testing.T) {
	tests := []struct {
		typ         IndexType
		name        string
		size        uint64
		storageSize uint64
		maxValue    uint32
		valid       bool
	}{
		{IndexTypeUnknown, "Unknown", 0, 0, 0, false},
		{IndexTypeUnsignedByte, "UnsignedByte", 1, 2, 0xFF, true},
		{IndexTypeUnsignedShort, "UnsignedShort", 2, 2, 0xFFFF, true},
		{IndexTypeUnsignedInt, "UnsignedInt", 4, 4, 0xFFFFFFFF, true},
		{IndexType(9), "IndexType(9)", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.typ.StorageSize(); got != tt.storageSize {
				t.Errorf("StorageSize() = %d, want %d", got, tt.storageSize)
			}
			if got := tt.typ.MaxValue(); got != tt.maxValue {
				t.Errorf("MaxValue() = %d, want %d", got, tt.maxValue)
			}
			if got := tt.typ.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestIndexTypeStorageType(t *testing.T) {
	tests := []struct {
		name      string
		typ       IndexType
		supports  bool
		want      IndexType
		wantError bool
	}{
		{"byte widens", IndexTypeUnsignedByte, false, IndexTypeUnsignedShort, false},
		{"short native", IndexTypeUnsignedShort, false, IndexTypeUnsignedShort, false},
		{"int supported", IndexTypeUnsignedInt, true, IndexTypeUnsignedInt, false},
		{"int unsupported", IndexTypeUnsignedInt, false, IndexTypeUnknown, true},
		{"unknown", IndexTypeUnknown, true, IndexTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.StorageType(tt.supports)
			if tt.wantError {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("error = %v, want ErrUnsupportedFormat", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("StorageType() = %v, want %v", got, tt.want)
			}
		})
	}
}
