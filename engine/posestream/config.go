package posestream

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAddr is the default TCP address the pose server listens on.
	DefaultAddr = ":43130"
	// DefaultScene is the layout served when none is configured.
	DefaultScene = "solar"
	// DefaultPingInterval controls the keepalive cadence for WebSocket connections.
	DefaultPingInterval = 30 * time.Second
	// DefaultMaxPayloadBytes limits inbound WebSocket frame size. Offset messages are tiny.
	DefaultMaxPayloadBytes int64 = 4 << 10
	// DefaultMaxClients bounds concurrent WebSocket connections. Zero disables the limit.
	DefaultMaxClients = 64
)

// Config captures the runtime tunables for the pose server.
type Config struct {
	Address         string
	Scene           string
	SceneDir        string
	AllowedOrigins  []string
	PingInterval    time.Duration
	MaxPayloadBytes int64
	MaxClients      int
}

// Load reads the pose server configuration from environment variables, applying defaults
// and returning one error describing every invalid override.
func Load() (*Config, error) {
	cfg := &Config{
		Address:         getString("OXY_POSED_ADDR", DefaultAddr),
		Scene:           getString("OXY_POSED_SCENE", DefaultScene),
		SceneDir:        strings.TrimSpace(os.Getenv("OXY_POSED_SCENE_DIR")),
		AllowedOrigins:  parseList(os.Getenv("OXY_POSED_ALLOWED_ORIGINS")),
		PingInterval:    DefaultPingInterval,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		MaxClients:      DefaultMaxClients,
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("OXY_POSED_MAX_CLIENTS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("OXY_POSED_MAX_CLIENTS must be a non-negative integer, got %q", raw))
		} else {
			cfg.MaxClients = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("OXY_POSED_PING_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("OXY_POSED_PING_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.PingInterval = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("OXY_POSED_MAX_PAYLOAD_BYTES")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("OXY_POSED_MAX_PAYLOAD_BYTES must be a positive integer, got %q", raw))
		} else {
			cfg.MaxPayloadBytes = value
		}
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// ServerOptions converts the configuration into server options.
//
// Returns:
//   - []ServerBuilderOption: options for NewServer
func (c *Config) ServerOptions() []ServerBuilderOption {
	return []ServerBuilderOption{
		WithMaxClients(c.MaxClients),
		WithPingInterval(c.PingInterval),
		WithMaxPayloadBytes(c.MaxPayloadBytes),
		WithAllowedOrigins(c.AllowedOrigins...),
	}
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
