package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/h3datagram/inspect"
)

type fileConfig struct {
	Addr              string   `toml:"addr"`
	RateLimit         bool     `toml:"rate_limit"`
	MessagesPerSecond float64  `toml:"messages_per_second"`
	Burst             int      `toml:"burst"`
	AllowedOrigins    []string `toml:"allowed_origins"`
}

type serveConfig struct {
	Addr           string
	RateLimit      *inspect.RateLimitConfig
	AllowedOrigins []string
}

func defaultServeConfig() serveConfig {
	return serveConfig{
		Addr:      ":8080",
		RateLimit: inspect.DefaultRateLimitConfig(),
	}
}

func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serveConfig{}, fmt.Errorf("load inspector config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return serveConfig{}, fmt.Errorf("load inspector config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("addr") {
		if addr := strings.TrimSpace(raw.Addr); addr != "" {
			cfg.Addr = addr
		}
	}

	if meta.IsDefined("rate_limit") {
		cfg.RateLimit.Enabled = raw.RateLimit
	}

	if meta.IsDefined("messages_per_second") {
		if raw.MessagesPerSecond <= 0 {
			return serveConfig{}, fmt.Errorf("messages_per_second must be positive, got %v", raw.MessagesPerSecond)
		}
		cfg.RateLimit.MessagesPerSecond = rate.Limit(raw.MessagesPerSecond)
	}

	if meta.IsDefined("burst") {
		if raw.Burst <= 0 {
			return serveConfig{}, fmt.Errorf("burst must be positive, got %d", raw.Burst)
		}
		cfg.RateLimit.Burst = raw.Burst
	}

	if meta.IsDefined("allowed_origins") {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}

	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c serveConfig) checkOrigin() inspect.CheckOriginFn {
	if len(c.AllowedOrigins) == 0 {
		return inspect.AllOrigins()
	}
	return inspect.AllowOrigins(c.AllowedOrigins...)
}
