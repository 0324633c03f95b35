package websocket

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/luciancaetano/h3datagram"
	"github.com/luciancaetano/h3datagram/internal/cursor"
	"github.com/luciancaetano/h3datagram/internal/datagram"
)

// qstreamIDLen is the size of the big-endian quarter stream ID that prefixes
// a CmdEncode request.
const qstreamIDLen = 8

var errInvalidParams = errors.New(h3datagram.ErrInvalidParams)

// DecodeResult describes a decoded datagram.
type DecodeResult struct {
	QStreamID  uint64 `json:"qstream_id"`
	SessionID  uint64 `json:"session_id"`
	PayloadLen int    `json:"payload_len"`
	PayloadHex string `json:"payload_hex"`
}

// EncodeResult holds an encoded datagram.
type EncodeResult struct {
	WriteSize int    `json:"write_size"`
	Hex       string `json:"hex"`
}

// DecodeDatagram decodes raw and describes it.
func DecodeDatagram(raw []byte) (DecodeResult, error) {
	d, err := datagram.Read(raw)
	if err != nil {
		return DecodeResult{}, err
	}
	return DecodeResult{
		QStreamID:  d.QStreamID().Uint64(),
		SessionID:  uint64(d.SessionID()),
		PayloadLen: len(d.Payload()),
		PayloadHex: hex.EncodeToString(d.Payload()),
	}, nil
}

// EncodeDatagram validates qstreamID and returns the wire encoding of the
// datagram, sized with WriteSize.
func EncodeDatagram(qstreamID uint64, payload []byte) ([]byte, error) {
	q, err := datagram.NewQStreamID(qstreamID)
	if err != nil {
		return nil, err
	}

	d := datagram.New(q, payload)
	out := make([]byte, d.WriteSize())
	if err := d.Write(out); err != nil {
		return nil, err
	}
	return out, nil
}

// registerBuiltins installs the decode/encode commands and JSON-RPC methods.
func (s *Server) registerBuiltins() {
	s.handlers.Store(h3datagram.CmdDecode, s.handleDecode)
	s.handlers.Store(h3datagram.CmdEncode, s.handleEncode)
	s.jsonRPCHandlers.Store("decode", jsonRPCDecode)
	s.jsonRPCHandlers.Store("encode", jsonRPCEncode)
}

func (s *Server) handleDecode(client h3datagram.Client, payload []byte) {
	res, err := DecodeDatagram(payload)
	if err != nil {
		s.replyError(client, err)
		return
	}

	body, err := json.Marshal(res)
	if err != nil {
		s.replyError(client, err)
		return
	}

	s.logger.Debug().
		Str("client_id", client.ID()).
		Uint64("qstream_id", res.QStreamID).
		Int("payload_len", res.PayloadLen).
		Msg("decoded datagram")
	s.send(client, h3datagram.CmdDecode, body)
}

func (s *Server) handleEncode(client h3datagram.Client, payload []byte) {
	r := cursor.NewReader(payload)
	prefix, ok := r.Bytes(qstreamIDLen)
	if !ok {
		s.replyError(client, errors.New(h3datagram.ErrShortEncodeRequest))
		return
	}

	out, err := EncodeDatagram(binary.BigEndian.Uint64(prefix), r.Remaining())
	if err != nil {
		s.replyError(client, err)
		return
	}

	s.send(client, h3datagram.CmdEncode, out)
}

func (s *Server) replyError(client h3datagram.Client, err error) {
	s.logger.Debug().Str("client_id", client.ID()).Err(err).Msg("request rejected")
	s.send(client, h3datagram.CmdError, []byte(err.Error()))
}

func (s *Server) send(client h3datagram.Client, command uint64, payload []byte) {
	if err := client.Send(context.Background(), command, payload); err != nil {
		s.logger.Warn().Str("client_id", client.ID()).Err(err).Msg("failed to send reply")
	}
}

// jsonRPCDecode handles {"hex": "..."}.
func jsonRPCDecode(params map[string]interface{}) (interface{}, error) {
	raw, err := hexParam(params, "hex")
	if err != nil {
		return nil, err
	}
	return DecodeDatagram(raw)
}

// jsonRPCEncode handles {"qstream_id": n, "payload_hex": "..."}. The id may
// be a JSON number or a decimal string for values beyond 2^53.
func jsonRPCEncode(params map[string]interface{}) (interface{}, error) {
	qstreamID, err := uintParam(params, "qstream_id")
	if err != nil {
		return nil, err
	}
	payload, err := hexParam(params, "payload_hex")
	if err != nil {
		return nil, err
	}

	out, err := EncodeDatagram(qstreamID, payload)
	if err != nil {
		return nil, err
	}
	return EncodeResult{WriteSize: len(out), Hex: hex.EncodeToString(out)}, nil
}

func hexParam(params map[string]interface{}, key string) ([]byte, error) {
	v, ok := params[key]
	if !ok {
		return nil, nil
	}
	str, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a hex string", errInvalidParams, key)
	}
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidParams, key, err)
	}
	return b, nil
}

func uintParam(params map[string]interface{}, key string) (uint64, error) {
	switch v := params[key].(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) || v > 1<<53 {
			return 0, fmt.Errorf("%w: %s must be a non-negative integer", errInvalidParams, key)
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", errInvalidParams, key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s is required", errInvalidParams, key)
	}
}
