package inspect

import (
	"net/http"
	"strings"

	"github.com/luciancaetano/h3datagram"
	"github.com/luciancaetano/h3datagram/internal/websocket"
)

type RateLimitConfig = websocket.RateLimitConfig
type CheckOriginFn = websocket.CheckOriginFn
type OnConnectFn = websocket.OnConnectFn
type OnDisconnectFn = websocket.OnClientDisconnectFn
type ServerConfig = *websocket.ServerConfig
type DecodeResult = websocket.DecodeResult
type EncodeResult = websocket.EncodeResult

// New creates an inspector server.
//
// Example:
//
//	server := inspect.New(inspect.NewConfig(":8080", inspect.DefaultRateLimitConfig(), inspect.AllOrigins(), func(client h3datagram.Client) {
//	    log.Printf("Client connected: %s", client.ID())
//	}, nil))
func New(cfg ServerConfig) h3datagram.InspectorServer {
	return websocket.New(cfg)
}

// NewConfig builds a ServerConfig. onConnect and onDisconnect may be nil.
func NewConfig(addr string, rateLimitConfig *RateLimitConfig, checkOrigin CheckOriginFn, onConnect OnConnectFn, onDisconnect OnDisconnectFn) ServerConfig {
	return &websocket.ServerConfig{
		Addr:               addr,
		RateLimitConfig:    rateLimitConfig,
		CheckOrigin:        checkOrigin,
		OnConnect:          onConnect,
		OnClientDisconnect: onDisconnect,
	}
}

// AllOrigins returns a checkOrigin function that allows all origins
func AllOrigins() CheckOriginFn {
	return func(r *http.Request) bool {
		return true
	}
}

// AllowOrigins returns a checkOrigin function that accepts requests whose
// Origin header matches one of origins, ignoring case. Requests without an
// Origin header are accepted, as they do not come from a browser.
func AllowOrigins(origins ...string) CheckOriginFn {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return websocket.DefaultRateLimitConfig()
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return websocket.NoRateLimit()
}

// DecodeDatagram decodes a raw QUIC datagram into a printable result.
func DecodeDatagram(raw []byte) (DecodeResult, error) {
	return websocket.DecodeDatagram(raw)
}

// EncodeDatagram encodes payload for qstreamID.
func EncodeDatagram(qstreamID uint64, payload []byte) ([]byte, error) {
	return websocket.EncodeDatagram(qstreamID, payload)
}
