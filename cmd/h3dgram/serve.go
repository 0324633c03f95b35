package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/luciancaetano/h3datagram"
	"github.com/luciancaetano/h3datagram/inspect"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WebSocket datagram inspector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if len(cfg.AllowedOrigins) == 0 {
				log.Warn().Msg("accepting every origin; set allowed_origins in production")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	return cmd
}

func runServer(ctx context.Context, cfg serveConfig) error {
	server := inspect.New(inspect.NewConfig(
		cfg.Addr,
		cfg.RateLimit,
		cfg.checkOrigin(),
		func(client h3datagram.Client) {
			log.Info().Str("client_id", client.ID()).Str("remote_addr", client.RemoteAddr()).Msg("client connected")
		},
		func(client h3datagram.Client, voluntary bool) {
			log.Info().Str("client_id", client.ID()).Bool("voluntary", voluntary).Msg("client disconnected")
		},
	))

	if err := server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(stopCtx)
}
