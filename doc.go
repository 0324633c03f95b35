// Package h3datagram implements the HTTP/3 datagram wire unit (RFC 9297) used
// by WebTransport: a QUIC DATAGRAM frame payload tagged with the quarter stream
// ID of the session's request stream.
//
// # Wire Format
//
//	[varint: quarter stream ID][N bytes: payload]
//
// The varint is the QUIC variable-length integer (RFC 9000, section 16). The
// quarter stream ID is the session's CONNECT stream ID divided by four and must
// not exceed 2^60-1.
//
// # Codec
//
// The codec lives in package dgram:
//
//	import "github.com/luciancaetano/h3datagram/dgram"
//
//	d, err := dgram.Read(quicDatagram)
//	if errors.Is(err, dgram.ErrTooShort) { ... }
//
//	out := make([]byte, d.WriteSize())
//	err = d.Write(out)
//
// Read never copies: the payload references the input buffer, so the caller
// must not modify that buffer while the Datagram is in use. Write fails with
// dgram.ErrEndOfBuffer, leaving the destination untouched, when the
// destination is shorter than WriteSize.
//
// The codec holds no state, does not allocate and is safe for concurrent use.
//
// # Inspector
//
// Package inspect serves a WebSocket endpoint that decodes and encodes
// datagrams for debugging peers. Messages are envelopes of a varint command
// followed by a payload:
//
//	[varint: command][N bytes: payload]
//
// Commands are CmdDecode, CmdEncode, CmdError and CmdJSONRPC (see commands.go).
// JSON-RPC 2.0 methods "decode" and "encode" mirror the binary commands.
//
// Each client is rate limited with a token bucket (default 100 messages/second,
// burst 200); exceeding it closes the connection with code 1008.
//
//   - Maximum envelope payload: 10MB
//   - Read timeout: 60s, write timeout: 10s, ping every 54s
//   - Origin validation via CheckOriginFn; never use inspect.AllOrigins() in production
//
// # Command Line
//
// cmd/h3dgram wraps the codec and the inspector: decode, encode, size and serve.
package h3datagram
