// Package cursor provides sequential readers and writers over byte slices.
//
// Neither type allocates: a Reader hands out subslices of its buffer and a
// Writer encodes directly into the caller's slice.
package cursor

import (
	"errors"

	"github.com/luciancaetano/h3datagram/internal/varint"
)

// ErrEndOfBuffer is returned by Writer when the buffer has no room left for a
// write. The buffer is not modified in that case.
var ErrEndOfBuffer = errors.New("cursor: end of buffer")

// Reader reads fields from an immutable byte slice.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) Reader {
	return Reader{buf: b}
}

// Varint reads one varint. It returns false and consumes nothing if the
// remaining bytes do not hold a complete encoding.
func (r *Reader) Varint() (varint.VarInt, bool) {
	v, n, ok := varint.Parse(r.buf[r.off:])
	if !ok {
		return 0, false
	}
	r.off += n
	return v, true
}

// Bytes returns the next n bytes without copying, or false if fewer remain.
func (r *Reader) Bytes(n int) ([]byte, bool) {
	if n < 0 || n > len(r.buf)-r.off {
		return nil, false
	}
	out := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return out, true
}

// Remaining returns every unread byte and moves the cursor to the end.
// The result aliases the reader's buffer.
func (r *Reader) Remaining() []byte {
	out := r.buf[r.off:]
	r.off = len(r.buf)
	return out
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Writer writes fields into a mutable byte slice. It never writes past
// len(buf).
type Writer struct {
	buf []byte
	off int
}

// NewWriter returns a Writer positioned at the start of b.
func NewWriter(b []byte) Writer {
	return Writer{buf: b}
}

// PutVarint writes the minimal encoding of v.
func (w *Writer) PutVarint(v varint.VarInt) error {
	n := v.Size()
	if n > w.Capacity() {
		return ErrEndOfBuffer
	}
	// Appending to a zero-length, capacity-bounded window encodes in place.
	v.Append(w.buf[w.off : w.off : w.off+n])
	w.off += n
	return nil
}

// PutBytes copies p verbatim.
func (w *Writer) PutBytes(p []byte) error {
	if len(p) > w.Capacity() {
		return ErrEndOfBuffer
	}
	w.off += copy(w.buf[w.off:], p)
	return nil
}

// Capacity returns how many bytes can still be written.
func (w *Writer) Capacity() int {
	return len(w.buf) - w.off
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int {
	return w.off
}
