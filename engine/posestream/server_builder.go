package posestream

import "time"

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*Server)

// WithMaxClients bounds concurrent connections. Zero disables the limit.
//
// Parameters:
//   - n: maximum clients
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithMaxClients(n int) ServerBuilderOption {
	return func(s *Server) {
		s.maxClients = n
	}
}

// WithPingInterval sets the keepalive ping cadence. A client that stays silent, pongs included,
// for two intervals is dropped.
//
// Parameters:
//   - interval: time between pings
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithPingInterval(interval time.Duration) ServerBuilderOption {
	return func(s *Server) {
		if interval > 0 {
			s.pingInterval = interval
		}
	}
}

// WithMaxPayloadBytes limits inbound frame size.
//
// Parameters:
//   - n: maximum frame size in bytes
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithMaxPayloadBytes(n int64) ServerBuilderOption {
	return func(s *Server) {
		if n > 0 {
			s.maxPayloadBytes = n
		}
	}
}

// WithAllowedOrigins restricts which page origins may connect. With none, every origin is accepted.
//
// Parameters:
//   - origins: allowed Origin header values
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAllowedOrigins(origins ...string) ServerBuilderOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}
