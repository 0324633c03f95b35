package websocket

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/luciancaetano/h3datagram"
	"github.com/luciancaetano/h3datagram/internal/protocol"
)

type h3Client = h3datagram.Client

type harness struct {
	server *Server
	url    string
}

func newHarness(t *testing.T, cfg *ServerConfig) *harness {
	t.Helper()

	if cfg.Logger == nil {
		// Connection goroutines may outlive the test, so nothing is routed to t.Log.
		logger := zerolog.New(io.Discard).Level(zerolog.DebugLevel)
		cfg.Logger = &logger
	}
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return &harness{
		server: s,
		url:    "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws",
	}
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	dialer := &websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial(h.url, nil)
	require.NoError(t, err)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, command uint64, payload []byte) (uint64, []byte) {
	t.Helper()

	msg, err := protocol.Encode(command, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, msg))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	cmd, body, err := protocol.Decode(data)
	require.NoError(t, err)
	return cmd, body
}
