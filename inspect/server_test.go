package inspect

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowOrigins(t *testing.T) {
	t.Parallel()

	check := AllowOrigins("https://example.com", " HTTPS://Other.test ")

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://example.com", true},
		{"https://EXAMPLE.com", true},
		{"https://other.test", true},
		{"https://evil.test", false},
	}

	for _, tt := range tests {
		r := &http.Request{Header: http.Header{}}
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, check(r), "origin %q", tt.origin)
	}
}

func TestAllOrigins(t *testing.T) {
	t.Parallel()

	r := &http.Request{Header: http.Header{"Origin": []string{"https://anything"}}}
	assert.True(t, AllOrigins()(r))
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(":9000", NoRateLimit(), AllOrigins(), nil, nil)
	require.NotNil(t, cfg)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.False(t, cfg.RateLimitConfig.Enabled)
	assert.NotNil(t, New(cfg).Handler())
}

func TestDecodeEncodeDatagram(t *testing.T) {
	t.Parallel()

	out, err := EncodeDatagram(2, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 'x'}, out)

	res, err := DecodeDatagram(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.QStreamID)
	assert.Equal(t, uint64(8), res.SessionID)
}
