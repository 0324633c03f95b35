package h3datagram

// Command IDs understood by the inspector. All fit in a one byte varint.
const (
	// CmdDecode carries a raw QUIC datagram; the reply carries a JSON DecodeResult.
	CmdDecode uint64 = 0x01
	// CmdEncode carries an 8 byte big-endian quarter stream ID followed by the
	// payload; the reply carries the encoded datagram.
	CmdEncode uint64 = 0x02
	// CmdError carries an error message in reply to a failed request.
	CmdError uint64 = 0x3E
	// CmdJSONRPC is reserved for JSON-RPC 2.0 messages
	CmdJSONRPC uint64 = 0x3F
)

// Standard error messages
const (
	// Protocol errors
	ErrInvalidMessageFormat = "Invalid message format"
	ErrShortEncodeRequest   = "encode request shorter than 8 byte quarter stream id"
	ErrParseError           = "Parse error"
	ErrInvalidRequest       = "Invalid Request"
	ErrInvalidParams        = "Invalid params"
	ErrMethodNotFound       = "Method not found"
	ErrInternalError        = "Internal error"

	// Connection errors
	ErrConnectionClosed     = "client connection is closed"
	ErrContextCancelled     = "client context cancelled"
	ErrFailedToEncode       = "failed to encode message"
	ErrServerAlreadyRunning = "server already running"
)

// JSON-RPC error codes (following JSON-RPC 2.0 specification)
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// JSON-RPC version
const (
	JSONRPCVersion = "2.0"
)
