// Package datagram encodes and decodes HTTP/3 datagrams (RFC 9297).
//
// Wire format of one QUIC DATAGRAM frame payload:
//
//	[varint: quarter stream ID][remaining bytes: HTTP datagram payload]
//
// Decoding is zero-copy: the payload of a decoded Datagram references the
// input buffer, so the caller must not modify that buffer while the Datagram
// is in use.
package datagram

import (
	"errors"

	"github.com/luciancaetano/h3datagram/internal/cursor"
	"github.com/luciancaetano/h3datagram/internal/ids"
	"github.com/luciancaetano/h3datagram/internal/varint"
)

var (
	// ErrTooShort means the input ended before the quarter stream ID varint
	// was complete.
	ErrTooShort = errors.New("datagram: too short")

	// ErrInvalidQStreamID means the quarter stream ID decoded but is out of
	// range.
	ErrInvalidQStreamID = errors.New("datagram: invalid quarter stream id")

	// ErrEndOfBuffer is returned by Write when the destination is smaller
	// than WriteSize.
	ErrEndOfBuffer = cursor.ErrEndOfBuffer
)

// Datagram is an HTTP/3 datagram: a quarter stream ID plus a borrowed payload.
type Datagram struct {
	qstreamID ids.QStreamID
	payload   []byte
}

// New builds a Datagram around payload without copying it.
//
// qstreamID is not checked again here. It must come from NewQStreamID,
// ids.QStreamIDFromVarint or a decoded Datagram; a value made by a plain
// conversion above ids.MaxQStreamID makes WriteSize, Write and Append panic.
func New(qstreamID ids.QStreamID, payload []byte) Datagram {
	return Datagram{qstreamID: qstreamID, payload: payload}
}

// Read decodes a Datagram from the payload of a QUIC datagram.
// The returned payload references quicDatagram.
func Read(quicDatagram []byte) (Datagram, error) {
	r := cursor.NewReader(quicDatagram)

	v, ok := r.Varint()
	if !ok {
		return Datagram{}, ErrTooShort
	}

	qstreamID, err := qstreamIDFromVarint(v)
	if err != nil {
		return Datagram{}, err
	}

	return Datagram{
		qstreamID: qstreamID,
		payload:   r.Remaining(),
	}, nil
}

// Write encodes d into the front of buf. If buf is shorter than WriteSize it
// returns ErrEndOfBuffer and buf is left untouched.
func (d Datagram) Write(buf []byte) error {
	if len(buf) < d.WriteSize() {
		return ErrEndOfBuffer
	}

	w := cursor.NewWriter(buf)
	if err := w.PutVarint(d.qstreamID.Varint()); err != nil {
		panic("datagram: capacity checked but varint write failed")
	}
	if err := w.PutBytes(d.payload); err != nil {
		panic("datagram: capacity checked but payload write failed")
	}
	return nil
}

// Append grows dst by exactly WriteSize bytes and encodes d there.
func (d Datagram) Append(dst []byte) []byte {
	n := len(dst)
	size := d.WriteSize()
	if cap(dst)-n < size {
		grown := make([]byte, n, n+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n+size]
	_ = d.Write(dst[n:])
	return dst
}

// WriteSize returns the exact number of bytes Write needs.
func (d Datagram) WriteSize() int {
	return WriteSizeFor(d.qstreamID, len(d.payload))
}

// WriteSizeFor returns the encoded size of a datagram carrying payloadLen
// bytes for qstreamID, without needing the payload itself. The caller must
// keep the sum within int range.
func WriteSizeFor(qstreamID ids.QStreamID, payloadLen int) int {
	return qstreamID.Varint().Size() + payloadLen
}

// NewQStreamID validates v as a quarter stream ID.
func NewQStreamID(v uint64) (ids.QStreamID, error) {
	return qstreamIDFromVarint(varint.VarInt(v))
}

// qstreamIDFromVarint is the one place ids.ErrInvalidQStreamID becomes
// ErrInvalidQStreamID.
func qstreamIDFromVarint(v varint.VarInt) (ids.QStreamID, error) {
	q, err := ids.QStreamIDFromVarint(v)
	if err != nil {
		return 0, ErrInvalidQStreamID
	}
	return q, nil
}

// QStreamID returns the quarter stream ID.
func (d Datagram) QStreamID() ids.QStreamID {
	return d.qstreamID
}

// SessionID returns the WebTransport session the datagram belongs to.
func (d Datagram) SessionID() ids.SessionID {
	return d.qstreamID.SessionID()
}

// Payload returns the payload. It aliases the buffer the Datagram was read
// from or built with.
func (d Datagram) Payload() []byte {
	return d.payload
}
