package dgram_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/luciancaetano/h3datagram/dgram"
)

func ExampleRead() {
	d, err := dgram.Read([]byte{0x01, 0xAA, 0xBB})
	if err != nil {
		panic(err)
	}
	fmt.Println(d.QStreamID(), d.SessionID(), d.Payload())
	// Output: 1 4 [170 187]
}

func ExampleDatagram_Write() {
	q, _ := dgram.NewQStreamID(1)
	d := dgram.New(q, []byte{0xAA, 0xBB})

	buf := make([]byte, d.WriteSize())
	if err := d.Write(buf); err != nil {
		panic(err)
	}
	fmt.Printf("%d % x\n", d.WriteSize(), buf)
	// Output: 3 01 aa bb
}

func TestNewQStreamID(t *testing.T) {
	t.Parallel()

	if _, err := dgram.NewQStreamID(dgram.MaxQStreamID); err != nil {
		t.Errorf("NewQStreamID(max) = %v", err)
	}
	if _, err := dgram.NewQStreamID(dgram.MaxQStreamID + 1); !errors.Is(err, dgram.ErrInvalidQStreamID) {
		t.Errorf("NewQStreamID(max+1) error = %v, want ErrInvalidQStreamID", err)
	}
	if _, err := dgram.NewQStreamID(^uint64(0)); !errors.Is(err, dgram.ErrInvalidQStreamID) {
		t.Errorf("NewQStreamID(max uint64) error = %v, want ErrInvalidQStreamID", err)
	}
}

func TestWriteSizeFor(t *testing.T) {
	t.Parallel()

	q, err := dgram.NewQStreamID(16384)
	if err != nil {
		t.Fatalf("NewQStreamID(16384): %v", err)
	}
	if got := dgram.WriteSizeFor(q, 1<<41); got != 1<<41+4 {
		t.Errorf("WriteSizeFor(16384, 2^41) = %d", got)
	}
	if got, want := dgram.WriteSizeFor(q, 3), dgram.New(q, []byte("abc")).WriteSize(); got != want {
		t.Errorf("WriteSizeFor() = %d, WriteSize() = %d", got, want)
	}
}

func TestSessionDatagramRoundTrip(t *testing.T) {
	t.Parallel()

	session, err := dgram.SessionIDFromStreamID(8)
	if err != nil {
		t.Fatalf("SessionIDFromStreamID(8): %v", err)
	}
	if _, err := dgram.SessionIDFromStreamID(3); !errors.Is(err, dgram.ErrInvalidSessionID) {
		t.Errorf("SessionIDFromStreamID(3) error = %v", err)
	}

	d := dgram.New(dgram.QStreamIDFromSessionID(session), []byte("ping"))
	raw := d.Append(nil)
	if !bytes.Equal(raw, []byte{0x02, 'p', 'i', 'n', 'g'}) {
		t.Fatalf("Append() = %x", raw)
	}

	got, err := dgram.Read(raw)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got.SessionID() != session {
		t.Errorf("SessionID() = %d, want %d", got.SessionID(), session)
	}
}
