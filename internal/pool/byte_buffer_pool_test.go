package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(EventBufferDefaultSize)
	copy(bb.ExtendOrGrow(5), []byte("hello"))

	assert.Equal(t, []byte("hello"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(EventBufferDefaultSize)
	copy(bb.ExtendOrGrow(9), []byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(EventBufferDefaultSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.ExtendOrGrow(4)
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.ExtendOrGrow(5)
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(EventBufferDefaultSize)
	bb.ExtendOrGrow(100)

	bb.SetLength(10)
	assert.Equal(t, 10, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(cap(bb.B) + 1) })
}

func TestByteBuffer_Slice(t *testing.T) {
	bb := NewByteBuffer(EventBufferDefaultSize)
	copy(bb.ExtendOrGrow(10), []byte("0123456789"))

	s := bb.Slice(2, 5)
	assert.Equal(t, []byte("234"), s)

	assert.Panics(t, func() { bb.Slice(-1, 2) })
	assert.Panics(t, func() { bb.Slice(5, 2) })
	assert.Panics(t, func() { bb.Slice(0, cap(bb.B)+1) })
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(16)
	originalCap := cap(bb.B)

	bb.Grow(8) // fits within existing capacity
	assert.Equal(t, originalCap, cap(bb.B))

	bb.Grow(1024) // forces reallocation
	assert.GreaterOrEqual(t, cap(bb.B), 1024)
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)

	region := bb.ExtendOrGrow(100)
	assert.Equal(t, 100, len(region))
	assert.Equal(t, 100, bb.Len())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 256)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.ExtendOrGrow(10)

	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len(), "pooled buffer should be reset by Put")
}

func TestByteBufferPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.Grow(1024)
	require.Greater(t, cap(bb.B), 128)

	p.Put(bb) // should be discarded, not pooled

	bb2 := p.Get()
	assert.LessOrEqual(t, cap(bb2.B), 64)
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(64, 256)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestGetPutEventBuffer(t *testing.T) {
	bb := GetEventBuffer()
	require.NotNil(t, bb)

	bb.ExtendOrGrow(32)
	PutEventBuffer(bb)

	bb2 := GetEventBuffer()
	assert.Equal(t, 0, bb2.Len())
	PutEventBuffer(bb2)
}

func TestByteBufferPool_Concurrency(t *testing.T) {
	const goroutines = 64
	done := make(chan bool, goroutines)

	for range goroutines {
		go func() {
			bb := GetEventBuffer()
			region := bb.ExtendOrGrow(16)
			for i := range region {
				region[i] = byte(i)
			}
			PutEventBuffer(bb)
			done <- true
		}()
	}

	for range goroutines {
		<-done
	}
}
