package websocket

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// TestNewLimiter tests rate limiter creation with different configs
func TestNewLimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *RateLimitConfig
		wantNil bool
	}{
		{"with rate limiting enabled", DefaultRateLimitConfig(), false},
		{"with rate limiting disabled", NoRateLimit(), true},
		{"with nil config", nil, true},
		{
			name:    "with custom config disabled",
			config:  &RateLimitConfig{MessagesPerSecond: 10, Burst: 20, Enabled: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := newLimiter(tt.config)
			if (limiter == nil) != tt.wantNil {
				t.Fatalf("rate limiter nil = %v, want nil = %v", limiter == nil, tt.wantNil)
			}
			if limiter != nil && !limiter.Allow() {
				t.Error("first request should be allowed")
			}
		})
	}
}

// TestClientLifecycle runs a real client against an httptest server
func TestClientLifecycle(t *testing.T) {
	t.Parallel()

	connected := make(chan *Client, 1)
	h := newHarness(t, &ServerConfig{
		RateLimitConfig: NoRateLimit(),
		OnConnect: func(client h3Client) {
			connected <- client.(*Client)
		},
	})
	conn := h.dial(t)
	defer conn.Close()

	client := <-connected
	if _, err := uuid.Parse(client.ID()); err != nil {
		t.Errorf("client ID %q is not a UUID: %v", client.ID(), err)
	}
	if client.RemoteAddr() == "" {
		t.Error("RemoteAddr() is empty")
	}
	if got, ok := h.server.GetClient(client.ID()); !ok || got != client {
		t.Error("GetClient() did not return the connected client")
	}
	if !client.IsAlive() {
		t.Fatal("client should be alive after connect")
	}

	if err := client.Close(context.Background()); err != nil {
		t.Logf("Close() returned %v", err)
	}
	if client.IsAlive() {
		t.Error("client should not be alive after Close")
	}
	if client.Context().Err() == nil {
		t.Error("client context should be cancelled after Close")
	}
	if err := client.Send(context.Background(), 0x01, nil); err == nil {
		t.Error("Send() after Close should fail")
	}
	if err := client.Close(context.Background()); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

// BenchmarkUUIDGeneration benchmarks UUID generation
func BenchmarkUUIDGeneration(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = uuid.New().String()
	}
}
