package protocol

import (
	"errors"
	"fmt"

	"github.com/luciancaetano/h3datagram/internal/cursor"
	"github.com/luciancaetano/h3datagram/internal/varint"
)

const maxPayloadSize = 10 * 1024 * 1024 // 10MB max payload size

var ErrTooShort = errors.New("protocol: message too short")

// Encode encodes the command as a varint followed by the payload.
func Encode(command uint64, payload []byte) ([]byte, error) {
	if len(payload) > maxPayloadSize {
		return nil, fmt.Errorf("payload size %d exceeds maximum %d bytes", len(payload), maxPayloadSize)
	}
	cmd, err := varint.FromUint64(command)
	if err != nil {
		return nil, fmt.Errorf("command %d: %w", command, err)
	}

	out := make([]byte, cmd.Size()+len(payload))
	w := cursor.NewWriter(out)
	if err := w.PutVarint(cmd); err != nil {
		return nil, err
	}
	if err := w.PutBytes(payload); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads the leading varint as the command and returns the rest as payload.
// The payload slice references the input data - do not modify it.
func Decode(data []byte) (uint64, []byte, error) {
	r := cursor.NewReader(data)
	cmd, ok := r.Varint()
	if !ok {
		return 0, nil, ErrTooShort
	}

	header := r.Offset()
	payload := r.Remaining()
	if len(payload) > maxPayloadSize {
		return 0, nil, fmt.Errorf("payload size %d after %d byte header exceeds maximum %d bytes", len(payload), header, maxPayloadSize)
	}
	return cmd.Uint64(), payload, nil
}
