package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderIntegers(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{
		0x12, 0x34,
		0x01, 0x02, 0x03, 0x04,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
	})

	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), u32)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i64)

	assert.Equal(t, 0, r.Remaining())
}

func TestReaderBounds(t *testing.T) {
	t.Parallel()

	t.Run("uint32 short", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte{1, 2, 3})
		_, err := r.Uint32()
		assert.ErrorIs(t, err, ErrShortBuffer)
	})

	t.Run("span short", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte{1, 2})
		_, err := r.Span(3)
		assert.ErrorIs(t, err, ErrShortBuffer)
	})

	t.Run("negative span", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte{1, 2})
		_, err := r.Span(-1)
		assert.ErrorIs(t, err, ErrShortBuffer)
	})
}

func TestReaderCString(t *testing.T) {
	t.Parallel()

	t.Run("terminated", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte("UnityFS\x00rest"))
		s, err := r.CString()
		require.NoError(t, err)
		assert.Equal(t, "UnityFS", s)
		assert.Equal(t, 8, r.Pos())
	})

	t.Run("empty string", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte{0, 'x'})
		s, err := r.CString()
		require.NoError(t, err)
		assert.Equal(t, "", s)
		assert.Equal(t, 1, r.Pos())
	})

	t.Run("missing terminator", func(t *testing.T) {
		t.Parallel()
		r := NewReader([]byte("no-zero"))
		_, err := r.CString()
		assert.ErrorIs(t, err, ErrMissingTerminator)
	})
}

func TestReaderAlign(t *testing.T) {
	t.Parallel()

	r := NewReader(make([]byte, 32))
	_, err := r.Span(3)
	require.NoError(t, err)

	r.Align(16)
	assert.Equal(t, 16, r.Pos())

	// Already aligned positions stay put.
	r.Align(16)
	assert.Equal(t, 16, r.Pos())
}

func TestWriterMirrorsReader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.CString("sig"))
	require.NoError(t, w.Uint32(7))
	require.NoError(t, w.Align(16))
	require.NoError(t, w.Uint16(0xBEEF))
	require.NoError(t, w.Int64(-1))
	require.NoError(t, w.Bytes([]byte{9, 9}))
	assert.Equal(t, buf.Len(), w.Pos())

	r := NewReader(buf.Bytes())

	s, err := r.CString()
	require.NoError(t, err)
	assert.Equal(t, "sig", s)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), u32)

	r.Align(16)
	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)

	rest, err := r.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, rest)
}

func TestWriterAlignZeroFills(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Bytes([]byte{1}))
	require.NoError(t, w.Align(4))
	assert.Equal(t, []byte{1, 0, 0, 0}, buf.Bytes())
}

func TestAlignedSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, AlignedSize(0, 16))
	assert.Equal(t, 16, AlignedSize(1, 16))
	assert.Equal(t, 16, AlignedSize(16, 16))
	assert.Equal(t, 32, AlignedSize(17, 16))
	assert.Equal(t, 5, AlignedSize(5, 1))
}
