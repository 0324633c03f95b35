package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/h3datagram"
	"github.com/luciancaetano/h3datagram/internal/datagram"
	"github.com/luciancaetano/h3datagram/internal/protocol"
)

const readWait = 60 * time.Second

// CheckOriginFn validates the origin of a WebSocket connection request.
type CheckOriginFn = func(r *http.Request) bool

// OnConnectFn is called after the WebSocket handshake completes and before
// the read loop starts. It runs synchronously during connection setup.
type OnConnectFn = func(client h3datagram.Client)

// OnClientDisconnectFn is called when a client disconnects. voluntary is true
// when the client context was cancelled before the read loop ended.
type OnClientDisconnectFn = func(client h3datagram.Client, voluntary bool)

type ServerConfig struct {
	Addr               string
	RateLimitConfig    *RateLimitConfig
	CheckOrigin        CheckOriginFn
	OnConnect          OnConnectFn
	OnClientDisconnect OnClientDisconnectFn
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// RateLimitConfig defines rate limiting configuration for clients
type RateLimitConfig struct {
	// MessagesPerSecond defines how many messages a client can send per second
	MessagesPerSecond rate.Limit
	// Burst defines the maximum burst size (token bucket capacity)
	Burst int
	// Enabled determines if rate limiting is active
	Enabled bool
}

// DefaultRateLimitConfig allows 100 messages per second with a burst of 200.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MessagesPerSecond: 100,
		Burst:             200,
		Enabled:           true,
	}
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: false,
	}
}

// Server implements the h3datagram.InspectorServer interface
type Server struct {
	addr     string
	server   *http.Server
	clients  sync.Map // map[string]*Client
	handlers sync.Map // map[uint64]func(client h3datagram.Client, payload []byte)

	jsonRPCHandlers sync.Map // map[string]func(params map[string]interface{}) (interface{}, error)

	rateLimitConfig *RateLimitConfig

	mu           sync.RWMutex
	running      bool
	upgrader     websocket.Upgrader
	onConnect    OnConnectFn
	onDisconnect OnClientDisconnectFn
	logger       zerolog.Logger
}

// New creates a server from cfg. A nil RateLimitConfig means
// DefaultRateLimitConfig(). The decode and encode commands are registered.
func New(cfg *ServerConfig) *Server {
	if cfg.RateLimitConfig == nil {
		cfg.RateLimitConfig = DefaultRateLimitConfig()
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	s := &Server{
		addr:            cfg.Addr,
		rateLimitConfig: cfg.RateLimitConfig,
		onConnect:       cfg.OnConnect,
		onDisconnect:    cfg.OnClientDisconnect,
		logger:          logger.With().Str("component", "inspector").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
	s.registerBuiltins()
	return s
}

// Handler returns the mux serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf(h3datagram.ErrServerAlreadyRunning)
	}
	s.running = true
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	srv := s.server
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Check for immediate startup errors with a small timeout
	select {
	case err := <-errChan:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(stopCtx)
	case <-time.After(100 * time.Millisecond):
		s.logger.Info().Str("addr", s.addr).Msg("inspector listening")
		return nil
	}
}

// Stop stops the WebSocket server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	srv := s.server
	s.mu.Unlock()

	s.clients.Range(func(key, value interface{}) bool {
		if client, ok := value.(*Client); ok {
			client.Close(ctx)
		}
		return true
	})

	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// RegisterHandler registers a handler for a command ID. Handlers run asynchronously.
func (s *Server) RegisterHandler(ctx context.Context, command uint64, handler func(client h3datagram.Client, payload []byte)) error {
	s.handlers.Store(command, handler)
	return nil
}

// RegisterJSONRPCHandler registers a JSON-RPC method served through h3datagram.CmdJSONRPC.
func (s *Server) RegisterJSONRPCHandler(ctx context.Context, method string, handler func(params map[string]interface{}) (interface{}, error)) error {
	s.jsonRPCHandlers.Store(method, handler)
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		s.logger.Debug().Err(err).Str("remote_addr", r.RemoteAddr).Msg("upgrade failed")
		return
	}

	client := NewClient(conn, r.RemoteAddr, s.rateLimitConfig, s.logger)
	s.clients.Store(client.ID(), client)
	client.logger.Debug().Msg("client connected")

	go s.handleClient(client)
}

func (s *Server) handleClient(client *Client) {
	defer func() {
		voluntary := client.Context().Err() == context.Canceled

		if s.onDisconnect != nil {
			s.onDisconnect(client, voluntary)
		}
		s.clients.Delete(client.ID())
		client.Close(context.Background())
	}()

	client.conn.SetReadDeadline(time.Now().Add(readWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	if s.onConnect != nil {
		s.onConnect(client)
	}

	for {
		select {
		case <-client.Context().Done():
			return
		default:
			_, data, err := client.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					client.logger.Warn().Err(err).Msg("unexpected websocket close")
				}
				return
			}

			client.conn.SetReadDeadline(time.Now().Add(readWait))

			if !client.CheckRateLimit(context.Background()) {
				client.logger.Warn().Msg("rate limit exceeded")
				client.CloseWithCode(context.Background(), websocket.ClosePolicyViolation, "Rate limit exceeded")
				return
			}

			command, payload, err := protocol.Decode(data)
			if err != nil {
				client.CloseWithCode(context.Background(), websocket.CloseProtocolError, h3datagram.ErrInvalidMessageFormat)
				return
			}

			s.handleProtocolMessage(client, command, payload)
		}
	}
}

// handleProtocolMessage dispatches one envelope. Handlers run in their own
// goroutine so the read loop is never blocked.
func (s *Server) handleProtocolMessage(client *Client, command uint64, payload []byte) {
	if command == h3datagram.CmdJSONRPC {
		go s.handleJSONRPCMessage(client, payload)
		return
	}

	if handler, ok := s.handlers.Load(command); ok {
		if handlerFunc, ok := handler.(func(h3datagram.Client, []byte)); ok {
			go handlerFunc(client, payload)
			return
		}
	}
	client.logger.Debug().Uint64("command", command).Msg("unknown command ignored")
}

// JSONRPCRequest represents a JSON-RPC 2.0 request
type JSONRPCRequest struct {
	JSONRPC string                 `json:"jsonrpc"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
	ID      interface{}            `json:"id"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
	ID      interface{}   `json:"id"`
}

// JSONRPCError represents a JSON-RPC 2.0 error
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (s *Server) handleJSONRPCMessage(client *Client, payload []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendJSONRPCError(client, nil, h3datagram.JSONRPCParseError, h3datagram.ErrParseError, nil)
		return
	}

	if req.JSONRPC != h3datagram.JSONRPCVersion {
		s.sendJSONRPCError(client, req.ID, h3datagram.JSONRPCInvalidRequest, h3datagram.ErrInvalidRequest, nil)
		return
	}

	handler, ok := s.jsonRPCHandlers.Load(req.Method)
	if !ok {
		s.sendJSONRPCError(client, req.ID, h3datagram.JSONRPCMethodNotFound, h3datagram.ErrMethodNotFound, nil)
		return
	}

	handlerFunc, ok := handler.(func(params map[string]interface{}) (interface{}, error))
	if !ok {
		s.sendJSONRPCError(client, req.ID, h3datagram.JSONRPCInternalError, h3datagram.ErrInternalError, nil)
		return
	}

	result, err := handlerFunc(req.Params)
	if err != nil {
		s.sendJSONRPCError(client, req.ID, jsonRPCErrorCode(err), err.Error(), nil)
		return
	}

	responseData, err := json.Marshal(JSONRPCResponse{
		JSONRPC: h3datagram.JSONRPCVersion,
		Result:  result,
		ID:      req.ID,
	})
	if err != nil {
		s.sendJSONRPCError(client, req.ID, h3datagram.JSONRPCInternalError, h3datagram.ErrInternalError, nil)
		return
	}

	s.send(client, h3datagram.CmdJSONRPC, responseData)
}

// jsonRPCErrorCode maps malformed input to invalid params and everything
// else to an internal error.
func jsonRPCErrorCode(err error) int {
	switch {
	case errors.Is(err, errInvalidParams),
		errors.Is(err, datagram.ErrTooShort),
		errors.Is(err, datagram.ErrInvalidQStreamID):
		return h3datagram.JSONRPCInvalidParams
	default:
		return h3datagram.JSONRPCInternalError
	}
}

func (s *Server) sendJSONRPCError(client *Client, id interface{}, code int, message string, data interface{}) {
	responseData, err := json.Marshal(JSONRPCResponse{
		JSONRPC: h3datagram.JSONRPCVersion,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal JSON-RPC error response")
		return
	}

	s.send(client, h3datagram.CmdJSONRPC, responseData)
}

// GetClient returns a client by ID
func (s *Server) GetClient(id string) (*Client, bool) {
	if client, ok := s.clients.Load(id); ok {
		return client.(*Client), true
	}
	return nil, false
}
