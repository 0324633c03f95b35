package ids

import (
	"errors"
	"testing"

	"github.com/luciancaetano/h3datagram/internal/varint"
)

func TestQStreamIDFromVarint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   uint64
		wantErr bool
	}{
		{"zero", 0, false},
		{"small", 42, false},
		{"max", MaxQStreamID, false},
		{"max plus one", MaxQStreamID + 1, true},
		{"max varint", varint.MaxValue, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := QStreamIDFromVarint(varint.VarInt(tt.value))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQStreamID) {
					t.Errorf("error = %v, want ErrInvalidQStreamID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Uint64() != tt.value {
				t.Errorf("Uint64() = %d, want %d", q.Uint64(), tt.value)
			}
		})
	}
}

func TestStreamIDKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id        StreamID
		client    bool
		bidi      bool
		sessionOK bool
	}{
		{0, true, true, true},
		{1, false, true, false},
		{2, true, false, false},
		{3, false, false, false},
		{4, true, true, true},
	}

	for _, tt := range tests {
		if got := tt.id.IsClientInitiated(); got != tt.client {
			t.Errorf("StreamID(%d).IsClientInitiated() = %v, want %v", tt.id, got, tt.client)
		}
		if got := tt.id.IsBidirectional(); got != tt.bidi {
			t.Errorf("StreamID(%d).IsBidirectional() = %v, want %v", tt.id, got, tt.bidi)
		}
		_, err := SessionIDFromStreamID(tt.id)
		if (err == nil) != tt.sessionOK {
			t.Errorf("SessionIDFromStreamID(%d) error = %v", tt.id, err)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []uint64{0, 4, 400, varint.MaxValue &^ 0x3} {
		session, err := SessionIDFromStreamID(StreamID(raw))
		if err != nil {
			t.Fatalf("SessionIDFromStreamID(%d): %v", raw, err)
		}
		q := QStreamIDFromSessionID(session)
		if q.Uint64() > MaxQStreamID {
			t.Errorf("quarter id %d above max", q)
		}
		if q.SessionID() != session {
			t.Errorf("QStreamID(%d).SessionID() = %d, want %d", q, q.SessionID(), session)
		}
		if session.StreamID().Varint().Uint64() != raw {
			t.Errorf("StreamID() = %d, want %d", session.StreamID(), raw)
		}
	}
}
