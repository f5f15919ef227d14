// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

// lruNode is a node in a doubly-linked LRU list.
// The node stores its key for O(1) deletion from the parent map.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// LRU maps keys to values and evicts the least recently used entry once
// the number of entries exceeds the limit.
//
// The head of the list is the most recently used entry, the tail the least.
type LRU[K comparable, V any] struct {
	entries   map[K]*lruNode[K, V]
	head      *lruNode[K, V]
	tail      *lruNode[K, V]
	limit     int
	evictions uint64
	onEvict   func(K, V)
}

// NewLRU creates an empty LRU holding at most limit entries.
// A limit of 0 or less means unlimited.
func NewLRU[K comparable, V any](limit int) *LRU[K, V] {
	if limit < 0 {
		limit = 0
	}
	return &LRU[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		limit:   limit,
	}
}

// OnEvict registers a callback invoked for every evicted entry.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.onEvict = fn
}

// Get returns the value stored for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(node)
	return node.value, true
}

// Peek returns the value stored for key without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return node.value, true
}

// Put stores value under key, replacing any previous value, and evicts the
// least recently used entry if the limit is exceeded.
func (c *LRU[K, V]) Put(key K, value V) {
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.pushFront(node)
	c.entries[key] = node

	if c.limit > 0 && len(c.entries) > c.limit {
		c.removeOldest()
	}
}

// Delete removes key. Returns true if it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(node)
	delete(c.entries, key)
	return true
}

// Oldest returns the key of the least recently used entry.
func (c *LRU[K, V]) Oldest() (K, bool) {
	if c.tail == nil {
		var zero K
		return zero, false
	}
	return c.tail.key, true
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Limit returns the configured entry limit (0 means unlimited).
func (c *LRU[K, V]) Limit() int {
	return c.limit
}

// Evictions returns how many entries have been evicted so far.
func (c *LRU[K, V]) Evictions() uint64 {
	return c.evictions
}

// Clear removes all entries without invoking the eviction callback.
func (c *LRU[K, V]) Clear() {
	c.entries = make(map[K]*lruNode[K, V])
	c.head = nil
	c.tail = nil
}

func (c *LRU[K, V]) removeOldest() {
	node := c.tail
	if node == nil {
		return
	}
	c.unlink(node)
	delete(c.entries, node.key)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(node.key, node.value)
	}
}

func (c *LRU[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *LRU[K, V]) moveToFront(node *lruNode[K, V]) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}

// unlink removes a node from the list and clears its pointers.
func (c *LRU[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}

	node.prev = nil
	node.next = nil
}
