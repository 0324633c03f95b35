package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luciancaetano/h3datagram/dgram"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a QUIC datagram payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseHex(args[0])
			if err != nil {
				return err
			}
			d, err := dgram.Read(raw)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "qstream_id: %d\n", d.QStreamID())
			fmt.Fprintf(out, "session_id: %d\n", d.SessionID())
			fmt.Fprintf(out, "payload_len: %d\n", len(d.Payload()))
			fmt.Fprintf(out, "payload: %s\n", hex.EncodeToString(d.Payload()))
			return nil
		},
	}
}

func newEncodeCmd() *cobra.Command {
	var qstreamID uint64

	cmd := &cobra.Command{
		Use:   "encode [payload-hex]",
		Short: "Encode a payload as an HTTP/3 datagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			if len(args) == 1 {
				var err error
				if payload, err = parseHex(args[0]); err != nil {
					return err
				}
			}
			q, err := dgram.NewQStreamID(qstreamID)
			if err != nil {
				return fmt.Errorf("encode: qstream id %d: %w", qstreamID, err)
			}

			d := dgram.New(q, payload)
			buf := make([]byte, d.WriteSize())
			if err := d.Write(buf); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&qstreamID, "qstream-id", 0, "quarter stream ID")
	return cmd
}

func newSizeCmd() *cobra.Command {
	var (
		qstreamID  uint64
		payloadLen int
	)

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the encoded size of a datagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if payloadLen < 0 {
				return fmt.Errorf("size: negative payload length %d", payloadLen)
			}
			q, err := dgram.NewQStreamID(qstreamID)
			if err != nil {
				return fmt.Errorf("size: qstream id %d: %w", qstreamID, err)
			}
			idLen := dgram.WriteSizeFor(q, 0)
			if payloadLen > math.MaxInt-idLen {
				return fmt.Errorf("size: payload length %d overflows the encoded size", payloadLen)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dgram.WriteSizeFor(q, payloadLen))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&qstreamID, "qstream-id", 0, "quarter stream ID")
	cmd.Flags().IntVar(&payloadLen, "payload-len", 0, "payload length in bytes")
	return cmd
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), " ", ""), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}
