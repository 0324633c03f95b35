// Package varint implements the QUIC variable-length integer used throughout
// the HTTP/3 wire format.
//
// Encoding (RFC 9000, section 16): the two most significant bits of the first
// byte select a length of 1, 2, 4 or 8 bytes, the remaining bits carry the
// value in network byte order. The largest encodable value is 2^62-1.
package varint

import (
	"errors"
	"fmt"

	"github.com/quic-go/quic-go/quicvarint"
)

// MaxValue is the largest value a VarInt can hold.
const MaxValue uint64 = quicvarint.Max

// MaxSize is the longest encoding of a VarInt in bytes.
const MaxSize = 8

var ErrOutOfRange = errors.New("varint: value out of range")

// VarInt is an unsigned integer bounded by MaxValue.
type VarInt uint64

// FromUint64 returns v as a VarInt, or ErrOutOfRange if v > MaxValue.
func FromUint64(v uint64) (VarInt, error) {
	if v > MaxValue {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return VarInt(v), nil
}

// Uint64 returns the integer value.
func (v VarInt) Uint64() uint64 {
	return uint64(v)
}

// Size returns the minimal encoded length of v in bytes.
func (v VarInt) Size() int {
	return quicvarint.Len(uint64(v))
}

// Append appends the minimal encoding of v to b.
func (v VarInt) Append(b []byte) []byte {
	return quicvarint.Append(b, uint64(v))
}

// Parse decodes one VarInt from the front of b and reports how many bytes it
// consumed. ok is false when b holds less than the declared encoding length.
func Parse(b []byte) (v VarInt, n int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	// The length prefix is checked here so truncated input never reaches the
	// library decoder.
	n = 1 << (b[0] >> 6)
	if len(b) < n {
		return 0, 0, false
	}
	value, consumed, err := quicvarint.Parse(b[:n])
	if err != nil || consumed != n {
		return 0, 0, false
	}
	return VarInt(value), n, true
}
