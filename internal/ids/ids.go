// Package ids defines the stream identifiers that appear in HTTP/3 datagrams.
package ids

import (
	"errors"

	"github.com/luciancaetano/h3datagram/internal/varint"
)

// MaxQStreamID is the largest valid quarter stream ID: the largest stream ID
// divided by four.
const MaxQStreamID uint64 = varint.MaxValue >> 2

var (
	ErrInvalidQStreamID = errors.New("ids: invalid quarter stream id")
	ErrInvalidSessionID = errors.New("ids: stream is not a client-initiated bidirectional stream")
)

// StreamID is a QUIC stream ID. The two low bits carry the initiator and
// directionality.
type StreamID varint.VarInt

// IsClientInitiated reports whether the client opened the stream.
func (s StreamID) IsClientInitiated() bool {
	return s&0x1 == 0
}

// IsBidirectional reports whether the stream carries data both ways.
func (s StreamID) IsBidirectional() bool {
	return s&0x2 == 0
}

func (s StreamID) Varint() varint.VarInt {
	return varint.VarInt(s)
}

// SessionID identifies a WebTransport session by the stream ID of its
// CONNECT request, which is always client-initiated and bidirectional.
type SessionID StreamID

// SessionIDFromStreamID validates s as a session stream.
func SessionIDFromStreamID(s StreamID) (SessionID, error) {
	if !s.IsClientInitiated() || !s.IsBidirectional() {
		return 0, ErrInvalidSessionID
	}
	return SessionID(s), nil
}

func (s SessionID) StreamID() StreamID {
	return StreamID(s)
}

// QStreamID is a quarter stream ID, the stream ID of the request stream
// divided by four, as carried on the wire by HTTP/3 datagrams (RFC 9297).
// Build it with QStreamIDFromVarint or QStreamIDFromSessionID: a converted
// value above MaxQStreamID is not encodable.
type QStreamID varint.VarInt

// QStreamIDFromVarint accepts v if it is at most MaxQStreamID.
func QStreamIDFromVarint(v varint.VarInt) (QStreamID, error) {
	if v.Uint64() > MaxQStreamID {
		return 0, ErrInvalidQStreamID
	}
	return QStreamID(v), nil
}

// QStreamIDFromSessionID derives the quarter stream ID of a session.
func QStreamIDFromSessionID(s SessionID) QStreamID {
	return QStreamID(uint64(s) >> 2)
}

func (q QStreamID) Varint() varint.VarInt {
	return varint.VarInt(q)
}

func (q QStreamID) Uint64() uint64 {
	return uint64(q)
}

// SessionID returns the session whose request stream q refers to.
func (q QStreamID) SessionID() SessionID {
	return SessionID(uint64(q) << 2)
}
