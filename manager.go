// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ibstream

import (
	"fmt"
)

// InitialStreamingBufferSize is the number of bytes an IndexDataManager
// reserves up front in each of its streaming buffers.
const InitialStreamingBufferSize = 4096 * 4

// TranslatedIndexData describes index data that is ready to draw.
type TranslatedIndexData struct {
	// StorageType is the index format to bind the buffer with.
	StorageType IndexType

	// StartOffset is the byte offset of the first index in Buffer.
	StartOffset uint64

	// StartIndex is StartOffset in units of StorageType; draw calls use it
	// as their first index.
	StartIndex uint64

	// Count is the number of indices.
	Count uint64

	// MinIndex and MaxIndex bound the index values.
	MinIndex uint32
	MaxIndex uint32

	// Serial identifies the allocation holding the data. A draw recorded
	// against a serial is stale once the buffer reports a different one.
	Serial Serial

	// Buffer is the backend buffer holding the data.
	Buffer Buffer
}

// IndexDataManager turns client index data into TranslatedIndexData.
//
// Client-memory indices are streamed through one dynamic buffer per
// storage width. Indices that live in an application-owned element buffer
// can instead be uploaded once into a StaticIndexBuffer and served from its
// range cache.
type IndexDataManager struct {
	renderer    Renderer
	streamShort *DynamicIndexBuffer
	streamInt   *DynamicIndexBuffer
	opts        options
}

// NewIndexDataManager creates the streaming buffers on r and reserves
// their initial space. The 32-bit stream exists only when r supports
// 32-bit indices.
func NewIndexDataManager(r Renderer, opts ...Option) (*IndexDataManager, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	o := applyOptions(opts)
	prefix := o.label
	if prefix == "" {
		prefix = "stream"
	}

	m := &IndexDataManager{renderer: r, opts: o}
	m.streamShort = NewDynamicIndexBuffer(r, WithLabel(prefix+"-u16"), WithObserver(o.observer))
	if err := m.streamShort.ReserveBufferSpace(o.initialSize, IndexTypeUnsignedShort); err != nil {
		m.Release()
		return nil, fmt.Errorf("ibstream: reserve 16-bit stream: %w", err)
	}

	if r.Supports32BitIndices() {
		m.streamInt = NewDynamicIndexBuffer(r, WithLabel(prefix+"-u32"), WithObserver(o.observer))
		if err := m.streamInt.ReserveBufferSpace(o.initialSize, IndexTypeUnsignedInt); err != nil {
			m.Release()
			return nil, fmt.Errorf("ibstream: reserve 32-bit stream: %w", err)
		}
	}

	Logger().Debug("ibstream: index data manager ready",
		"label", prefix, "uint32", m.streamInt != nil, "initial_size", o.initialSize)
	return m, nil
}

// NewStaticIndexBuffer creates a static buffer on the manager's renderer,
// inheriting its observer.
func (m *IndexDataManager) NewStaticIndexBuffer(opts ...Option) *StaticIndexBuffer {
	all := append([]Option{WithObserver(m.opts.observer), WithRangeCacheLimit(m.opts.rangeCacheLimit)}, opts...)
	return NewStaticIndexBuffer(m.renderer, all...)
}

// StreamingBuffer returns the dynamic buffer used for indices of type t,
// or nil if the device cannot store them.
func (m *IndexDataManager) StreamingBuffer(t IndexType) *DynamicIndexBuffer {
	switch t {
	case IndexTypeUnsignedByte, IndexTypeUnsignedShort:
		return m.streamShort
	case IndexTypeUnsignedInt:
		return m.streamInt
	default:
		return nil
	}
}

// StreamIndexData uploads count indices of type t from client memory
// through the matching streaming buffer.
func (m *IndexDataManager) StreamIndexData(t IndexType, count uint64, indices []byte) (TranslatedIndexData, error) {
	storage, err := m.storageType(t)
	if err != nil {
		return TranslatedIndexData{}, err
	}
	if err := checkCount(t.Size(), count, uint64(len(indices))); err != nil {
		return TranslatedIndexData{}, err
	}

	stream := m.StreamingBuffer(storage)
	out := TranslatedIndexData{
		StorageType: storage,
		Count:       count,
		Serial:      stream.Serial(),
		Buffer:      stream.Buffer(),
	}
	if count == 0 {
		return out, nil
	}

	size := count * storage.StorageSize()
	if err := stream.ReserveBufferSpace(size, storage); err != nil {
		return TranslatedIndexData{}, err
	}
	data, offset, err := stream.MapBuffer(size)
	if err != nil {
		return TranslatedIndexData{}, err
	}
	convErr := ConvertIndices(t, indices, count, data)
	if err := stream.UnmapBuffer(); err != nil {
		return TranslatedIndexData{}, err
	}
	if convErr != nil {
		return TranslatedIndexData{}, convErr
	}

	out.MinIndex, out.MaxIndex, err = ComputeRange(t, indices, count)
	if err != nil {
		return TranslatedIndexData{}, err
	}
	out.StartOffset = offset
	out.StartIndex = offset / storage.StorageSize()
	out.Serial = stream.Serial()
	out.Buffer = stream.Buffer()
	return out, nil
}

// PrepareStaticIndexData serves count indices of type t starting at byte
// offset in source, the full contents of an application element buffer.
//
// On first use the whole of source is converted into static. Each
// distinct (offset, count) pair is then resolved once and cached. When
// static already holds a different index type, or offset is not aligned
// to the index size, the indices are streamed instead.
//
// The caller must create a new static buffer whenever the contents of
// source change.
func (m *IndexDataManager) PrepareStaticIndexData(static *StaticIndexBuffer, t IndexType, source []byte, offset, count uint64) (TranslatedIndexData, error) {
	storage, err := m.storageType(t)
	if err != nil {
		return TranslatedIndexData{}, err
	}
	byteCount := saturatingMul(count, t.Size())
	if err := CheckRange(offset, byteCount, uint64(len(source))); err != nil {
		return TranslatedIndexData{}, err
	}

	if static == nil || offset%t.Size() != 0 ||
		(static.Size() != 0 && static.IndexType() != t) {
		return m.StreamIndexData(t, count, source[offset:offset+byteCount])
	}

	if static.Size() == 0 || static.WritePosition() == 0 {
		if err := m.uploadStatic(static, t, storage, source); err != nil {
			return TranslatedIndexData{}, err
		}
	}

	r, ok := static.LookupRange(offset, count)
	if !ok {
		r.MinIndex, r.MaxIndex, err = ComputeRange(t, source[offset:], count)
		if err != nil {
			return TranslatedIndexData{}, err
		}
		r.StreamOffset = offset / t.Size() * storage.StorageSize()
		static.AddRange(offset, count, r)
	}

	return TranslatedIndexData{
		StorageType: storage,
		StartOffset: r.StreamOffset,
		StartIndex:  r.StreamOffset / storage.StorageSize(),
		Count:       count,
		MinIndex:    r.MinIndex,
		MaxIndex:    r.MaxIndex,
		Serial:      static.Serial(),
		Buffer:      static.Buffer(),
	}, nil
}

// uploadStatic converts all of source into static.
func (m *IndexDataManager) uploadStatic(static *StaticIndexBuffer, t, storage IndexType, source []byte) error {
	total := uint64(len(source)) / t.Size()
	size := total * storage.StorageSize()
	if size == 0 {
		return nil
	}
	if err := static.ReserveBufferSpace(size, t); err != nil {
		return err
	}
	data, _, err := static.MapBuffer(size)
	if err != nil {
		return err
	}
	convErr := ConvertIndices(t, source, total, data)
	if err := static.UnmapBuffer(); err != nil {
		return err
	}
	return convErr
}

func (m *IndexDataManager) storageType(t IndexType) (IndexType, error) {
	storage, err := t.StorageType(m.renderer.Supports32BitIndices())
	if err != nil {
		Logger().Error("ibstream: unsupported index type", "type", t, "error", err)
		return IndexTypeUnknown, err
	}
	return storage, nil
}

// Release destroys the streaming buffers. Static buffers created through
// the manager are owned by the caller.
func (m *IndexDataManager) Release() {
	if m.streamShort != nil {
		m.streamShort.Release()
	}
	if m.streamInt != nil {
		m.streamInt.Release()
	}
}
