// Package dgram is the public API of the HTTP/3 datagram codec.
//
//	d, err := dgram.Read(quicDatagram)
//	if err != nil {
//	    // dgram.ErrTooShort or dgram.ErrInvalidQStreamID
//	}
//	buf := make([]byte, d.WriteSize())
//	_ = d.Write(buf)
//
// Payloads are never copied: a decoded payload references the input buffer.
package dgram

import (
	"github.com/luciancaetano/h3datagram/internal/datagram"
	"github.com/luciancaetano/h3datagram/internal/ids"
)

type Datagram = datagram.Datagram
type QStreamID = ids.QStreamID
type SessionID = ids.SessionID
type StreamID = ids.StreamID

// MaxQStreamID is the largest quarter stream ID a datagram can carry.
const MaxQStreamID = ids.MaxQStreamID

var (
	ErrTooShort         = datagram.ErrTooShort
	ErrInvalidQStreamID = datagram.ErrInvalidQStreamID
	ErrEndOfBuffer      = datagram.ErrEndOfBuffer
	ErrInvalidSessionID = ids.ErrInvalidSessionID
)

// New builds a Datagram without copying payload. qstreamID must come from
// NewQStreamID, QStreamIDFromSessionID or a decoded Datagram; converting an
// out of range integer directly to QStreamID makes the encoding methods panic.
func New(qstreamID QStreamID, payload []byte) Datagram {
	return datagram.New(qstreamID, payload)
}

// Read decodes a QUIC datagram payload. The returned payload aliases raw.
func Read(raw []byte) (Datagram, error) {
	return datagram.Read(raw)
}

// NewQStreamID validates v as a quarter stream ID.
func NewQStreamID(v uint64) (QStreamID, error) {
	return datagram.NewQStreamID(v)
}

// WriteSizeFor returns the encoded size of a datagram with a payload of
// payloadLen bytes, without a payload or a buffer.
func WriteSizeFor(qstreamID QStreamID, payloadLen int) int {
	return datagram.WriteSizeFor(qstreamID, payloadLen)
}

// SessionIDFromStreamID validates s as the CONNECT stream of a session.
func SessionIDFromStreamID(s StreamID) (SessionID, error) {
	return ids.SessionIDFromStreamID(s)
}

// QStreamIDFromSessionID returns the quarter stream ID used for the session's
// datagrams.
func QStreamIDFromSessionID(s SessionID) QStreamID {
	return ids.QStreamIDFromSessionID(s)
}
