package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/luciancaetano/h3datagram/internal/logging"
)

type globalFlags struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "h3dgram",
		Short: "Decode, encode and inspect HTTP/3 datagrams",
		Long: `h3dgram works with HTTP/3 datagrams (RFC 9297) as carried in QUIC DATAGRAM frames:

  [varint: quarter stream ID][payload]

Byte arguments and output are hex encoded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.ConfigureRuntime()
			if lvl, ok := logging.ParseLevel(flags.logLevel); ok {
				zerolog.SetGlobalLevel(lvl)
				log.Logger = log.Logger.Level(lvl)
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error|off (default from "+logging.EnvLogLevel+")")

	root.AddCommand(newDecodeCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newSizeCmd())
	root.AddCommand(newServeCmd())
	return root
}
