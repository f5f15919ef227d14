// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"strconv"
	"testing"
)

func TestNewLRU(t *testing.T) {
	c := NewLRU[string, int](100)
	if c == nil {
		t.Fatal("NewLRU returned nil")
	}
	if c.Limit() != 100 {
		t.Errorf("Limit() = %d, want 100", c.Limit())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if NewLRU[string, int](-5).Limit() != 0 {
		t.Error("negative limit should clamp to unlimited")
	}
}

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[string, int](10)
	c.Put("key1", 42)

	val, ok := c.Get("key1")
	if !ok || val != 42 {
		t.Errorf("Get(key1) = (%d, %v), want (42, true)", val, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Put("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("Put should replace value, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after replace", c.Len())
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int, string](3)
	var evicted []int
	c.OnEvict(func(k int, _ string) { evicted = append(evicted, k) })

	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	// Touch 1 so 2 becomes the oldest.
	c.Get(1)
	c.Put(4, "d")

	if _, ok := c.Peek(2); ok {
		t.Error("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Peek(k); !ok {
			t.Errorf("key %d should still be cached", k)
		}
	}
	if len(evicted) != 1 || evicted[0] != 2 {
		t.Errorf("evicted = %v, want [2]", evicted)
	}
	if c.Evictions() != 1 {
		t.Errorf("Evictions() = %d, want 1", c.Evictions())
	}
}

func TestLRUUnlimited(t *testing.T) {
	c := NewLRU[int, int](0)
	for i := 0; i < 10000; i++ {
		c.Put(i, i)
	}
	if c.Len() != 10000 {
		t.Errorf("Len() = %d, want 10000", c.Len())
	}
	if c.Evictions() != 0 {
		t.Errorf("Evictions() = %d, want 0", c.Evictions())
	}
	oldest, ok := c.Oldest()
	if !ok || oldest != 0 {
		t.Errorf("Oldest() = (%d, %v), want (0, true)", oldest, ok)
	}
}

func TestLRUPeekDoesNotTouch(t *testing.T) {
	c := NewLRU[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Peek(1)
	c.Put(3, 3)
	if _, ok := c.Peek(1); ok {
		t.Error("Peek must not refresh recency")
	}
}

func TestLRUDeleteAndClear(t *testing.T) {
	c := NewLRU[string, int](10)
	for i := 0; i < 5; i++ {
		c.Put(strconv.Itoa(i), i)
	}

	if !c.Delete("2") {
		t.Error("Delete(2) = false, want true")
	}
	if c.Delete("2") {
		t.Error("second Delete(2) = true, want false")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Oldest(); ok {
		t.Error("Oldest() should report empty after Clear")
	}

	// The list must remain usable after Clear.
	c.Put("x", 1)
	if v, ok := c.Get("x"); !ok || v != 1 {
		t.Errorf("Get(x) = (%d, %v), want (1, true)", v, ok)
	}
}

func TestLRUSingleEntryLimit(t *testing.T) {
	c := NewLRU[int, int](1)
	c.Put(1, 1)
	c.Put(2, 2)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Peek(2); !ok {
		t.Error("newest entry must survive")
	}
	if k, _ := c.Oldest(); k != 2 {
		t.Errorf("Oldest() = %d, want 2", k)
	}
}

func BenchmarkLRUGet(b *testing.B) {
	c := NewLRU[int, int](1000)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(50)
	}
}

func BenchmarkLRUPutEvict(b *testing.B) {
	c := NewLRU[int, int](64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, i)
	}
}
