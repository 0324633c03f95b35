package h3datagram

import (
	"context"
	"net/http"
)

// InspectorServer defines a WebSocket service that decodes and encodes HTTP/3
// datagrams on request.
//
// Every WebSocket message is an envelope of a varint command followed by a
// binary payload. Replies go only to the client that asked; the server never
// forwards datagrams between clients.
//
// Example usage:
//
//	import "github.com/luciancaetano/h3datagram/inspect"
//
//	server := inspect.New(inspect.NewConfig(":8080", inspect.DefaultRateLimitConfig(), inspect.AllOrigins(), nil, nil))
//	server.Start(ctx)
//
//	// a client sends [CmdDecode][raw QUIC datagram] and receives
//	// [CmdDecode][{"qstream_id":1,"session_id":4,...}]
type InspectorServer interface {
	// Start starts listening for connections.
	//
	// Returns an error if the server is already running or if there's a problem
	// binding to the network address.
	Start(ctx context.Context) error

	// Stop closes all client connections and shuts the HTTP server down.
	Stop(ctx context.Context) error

	// Handler returns the HTTP handler serving the /ws endpoint, for embedding
	// the inspector into an existing mux or an httptest server.
	Handler() http.Handler

	// RegisterHandler registers a handler for a custom command ID.
	//
	// Handlers run in their own goroutine. Registering CmdDecode or CmdEncode
	// replaces the built-in behaviour.
	//
	// Example:
	//
	//	server.RegisterHandler(ctx, 0x10, func(client Client, payload []byte) {
	//	    client.Send(ctx, 0x10, payload)
	//	})
	RegisterHandler(ctx context.Context, command uint64, handler func(client Client, payload []byte)) error

	// RegisterJSONRPCHandler registers a JSON-RPC 2.0 method, reachable through
	// the reserved CmdJSONRPC command. The methods "decode" and "encode" are
	// built in.
	RegisterJSONRPCHandler(ctx context.Context, method string, handler func(params map[string]interface{}) (interface{}, error)) error
}

// Client represents a connected WebSocket client.
//
// The client's context is cancelled when the connection closes.
type Client interface {
	// ID returns the unique identifier assigned when the client connected.
	ID() string

	// RemoteAddr returns the client's remote network address.
	RemoteAddr() string

	// Context returns the client's lifecycle context.
	Context() context.Context

	// Send encodes command and payload into an envelope and queues it for
	// delivery to this client.
	//
	// Returns an error if the connection is closed or the context is cancelled.
	Send(ctx context.Context, command uint64, payload []byte) error

	// Close closes the connection with websocket.CloseNormalClosure.
	Close(ctx context.Context) error

	// CloseWithCode closes the connection with a specific WebSocket close code
	// and optional reason.
	CloseWithCode(ctx context.Context, code int, reason string) error

	// IsAlive returns true if the connection is still open.
	IsAlive() bool
}
