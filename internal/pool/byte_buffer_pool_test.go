package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap(), "Reset should keep capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(SegmentBufferDefaultSize)
	bb.MustWrite([]byte("samples"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "samples", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(SegmentBufferDefaultSize)
	bb.MustWrite([]byte("test"))

	n, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, int64(0), n)
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(SegmentBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, SegmentBufferDefaultSize, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(SegmentBufferDefaultSize)
		bb.MustWrite(make([]byte, SegmentBufferDefaultSize))
		bb.Grow(1)
		assert.Equal(t, 2*SegmentBufferDefaultSize, bb.Cap())
		assert.Equal(t, SegmentBufferDefaultSize, bb.Len())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * SegmentBufferDefaultSize
		bb := &ByteBuffer{B: make([]byte, size)}
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("huge request", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(SegmentBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), SegmentBufferDefaultSize*3)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("preserved"))
		bb.Grow(SegmentBufferDefaultSize * 2)
		assert.Equal(t, []byte("preserved"), bb.Bytes())
	})
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestSegmentBufferPool(t *testing.T) {
	bb := GetSegmentBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), SegmentBufferDefaultSize)

	bb.MustWrite([]byte("data"))
	PutSegmentBuffer(bb)
	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")

	assert.NotPanics(t, func() { PutSegmentBuffer(nil) })
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.Grow(10000)
	require.Greater(t, bb.Cap(), 4096)
	p.Put(bb)

	bb2 := p.Get()
	assert.LessOrEqual(t, bb2.Cap(), 4096, "oversized buffers must not be reused")
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetSegmentBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutSegmentBuffer(bb)
			}
		}()
	}

	wg.Wait()
}
