// Package wire implements cursor-based big-endian readers and writers for the
// bundle container format. Every multi-byte integer on the wire is big-endian
// regardless of host byte order.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// ErrShortBuffer is returned when a read would pass the end of the buffer.
var ErrShortBuffer = errors.New("wire: read past end of buffer")

// ErrMissingTerminator is returned when a string field has no zero terminator
// before the buffer ends.
var ErrMissingTerminator = errors.New("wire: unterminated string")

// Reader is a sequential cursor over an immutable byte buffer.
//
// The buffer is retained, not copied; callers must not modify it while the
// Reader is in use.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Uint16 reads a big-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Uint32 reads a big-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// Uint64 reads a big-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// Int64 reads a big-endian int64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// CString reads bytes up to and including a zero terminator and returns them
// as a string without the terminator. Unlike a naive scan, the cursor is never
// advanced past the end of the buffer: a missing terminator is an error.
func (r *Reader) CString() (string, error) {
	i := bytes.IndexByte(r.data[r.pos:], 0)
	if i < 0 {
		return "", ErrMissingTerminator
	}
	s := string(r.data[r.pos : r.pos+i])
	r.pos += i + 1
	return s, nil
}

// Bytes reads n bytes into a freshly allocated slice.
func (r *Reader) Bytes(n int) ([]byte, error) {
	s, err := r.Span(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s)
	return out, nil
}

// Span returns a view of the next n bytes without copying. The view aliases
// the Reader's buffer and is only valid while that buffer is alive.
func (r *Reader) Span(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrShortBuffer
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// Align advances the cursor to the next multiple of k. The skipped padding is
// not inspected.
func (r *Reader) Align(k int) {
	if k <= 1 {
		return
	}
	if rem := r.pos % k; rem != 0 {
		r.pos += k - rem
	}
}

// Writer is a position-tracking big-endian writer over an output sink. It
// mirrors every Reader operation; Align zero-fills the skipped bytes.
type Writer struct {
	w   io.Writer
	pos int
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return w.pos }

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.pos += n
	return err
}

// Uint16 writes a big-endian uint16.
func (w *Writer) Uint16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return w.write(b[:])
}

// Uint32 writes a big-endian uint32.
func (w *Writer) Uint32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return w.write(b[:])
}

// Uint64 writes a big-endian uint64.
func (w *Writer) Uint64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return w.write(b[:])
}

// Int64 writes a big-endian int64.
func (w *Writer) Int64(v int64) error {
	return w.Uint64(uint64(v))
}

// CString writes s followed by a zero terminator.
func (w *Writer) CString(s string) error {
	if err := w.write([]byte(s)); err != nil {
		return err
	}
	return w.write([]byte{0})
}

// Bytes writes p verbatim.
func (w *Writer) Bytes(p []byte) error {
	return w.write(p)
}

// Align writes zero bytes until the position is a multiple of k.
func (w *Writer) Align(k int) error {
	if k <= 1 {
		return nil
	}
	rem := w.pos % k
	if rem == 0 {
		return nil
	}
	return w.write(make([]byte, k-rem))
}

// AlignedSize returns n rounded up to the next multiple of k.
func AlignedSize(n, k int) int {
	if k <= 1 {
		return n
	}
	if rem := n % k; rem != 0 {
		return n + k - rem
	}
	return n
}
