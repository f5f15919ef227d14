// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import "errors"

// errFakeOOM is returned by fakeBuffer when allocation is set to fail.
var errFakeOOM = errors.New("fake: out of memory")

// fakeBuffer is a host-memory Buffer that records what it was asked to do.
type fakeBuffer struct {
	supports32 bool
	failInit   bool
	failDisc   bool

	storage   []byte
	indexType IndexType
	dynamic   bool
	serial    Serial
	mapped    bool
	released  bool

	initCalls    int
	discardCalls int
	mapCalls     int
}

func (b *fakeBuffer) Initialize(size uint64, t IndexType, dynamic bool) error {
	b.initCalls++
	b.storage = nil
	b.indexType = IndexTypeUnknown
	if _, err := t.StorageType(b.supports32); err != nil {
		return err
	}
	if b.failInit || size == 0 {
		return &AllocationError{Size: size, Err: errFakeOOM}
	}
	b.storage = make([]byte, size)
	b.indexType = t
	b.dynamic = dynamic
	b.serial = NextSerial()
	return nil
}

func (b *fakeBuffer) Map(offset, size uint64) ([]byte, error) {
	b.mapCalls++
	if b.storage == nil {
		return nil, ErrNotInitialized
	}
	if b.mapped {
		return nil, ErrAlreadyMapped
	}
	if err := CheckRange(offset, size, uint64(len(b.storage))); err != nil {
		return nil, err
	}
	b.mapped = true
	return b.storage[offset : offset+size], nil
}

func (b *fakeBuffer) Unmap() error {
	if !b.mapped {
		return ErrNotMapped
	}
	b.mapped = false
	return nil
}

func (b *fakeBuffer) Discard() error {
	b.discardCalls++
	if b.storage == nil {
		return ErrNotInitialized
	}
	if b.failDisc {
		return errFakeOOM
	}
	b.storage = make([]byte, len(b.storage))
	return nil
}

func (b *fakeBuffer) Resize(size uint64, t IndexType) error {
	if size > b.Size() || t != b.indexType {
		return b.Initialize(size, t, b.dynamic)
	}
	return nil
}

func (b *fakeBuffer) Size() uint64         { return uint64(len(b.storage)) }
func (b *fakeBuffer) IndexType() IndexType { return b.indexType }
func (b *fakeBuffer) Serial() Serial       { return b.serial }
func (b *fakeBuffer) Dynamic() bool        { return b.dynamic }
func (b *fakeBuffer) Release() {
	b.released = true
	b.storage = nil
}

// fakeRenderer hands out fakeBuffers and keeps them for inspection.
type fakeRenderer struct {
	supports32 bool
	failInit   bool
	buffers    []*fakeBuffer
}

func newFakeRenderer(supports32 bool) *fakeRenderer {
	return &fakeRenderer{supports32: supports32}
}

func (r *fakeRenderer) CreateIndexBuffer() Buffer {
	b := &fakeBuffer{supports32: r.supports32, failInit: r.failInit}
	r.buffers = append(r.buffers, b)
	return b
}

func (r *fakeRenderer) Supports32BitIndices() bool { return r.supports32 }

// fake returns the fakeBuffer behind an allocator.
func fake(ib IndexBuffer) *fakeBuffer {
	return ib.Buffer().(*fakeBuffer)
}

// recordingObserver collects observer callbacks.
type recordingObserver struct {
	inits    [][2]uint64
	discards int
	mapped   uint64
	hits     int
	misses   int
}

func (o *recordingObserver) BufferInitialized(_ string, oldSize, newSize uint64) {
	o.inits = append(o.inits, [2]uint64{oldSize, newSize})
}
func (o *recordingObserver) BufferDiscarded(string)            { o.discards++ }
func (o *recordingObserver) BufferMapped(_ string, size uint64) { o.mapped += size }
func (o *recordingObserver) RangeLookup(_ string, hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}
