package httpserver

import (
	"log/slog"
	"net/http"
)

// Option configures runtime collaborators of the Server.
type Option func(*Server)

// WithLogger supplies the logger handed to lifecycle hooks. Nil keeps the
// noop logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBaseServer uses the provided http.Server underneath; fields already set
// on it take precedence over Config.
func WithBaseServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: WithBaseServer called with nil server")
	}
	return func(s *Server) { s.base = srv }
}

// WithStartHook registers a callback run when the server begins listening.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStartHook called with nil hook")
	}
	return func(s *Server) { s.startHooks = append(s.startHooks, h) }
}

// WithStopHook registers a callback run after the server shuts down.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStopHook called with nil hook")
	}
	return func(s *Server) { s.stopHooks = append(s.stopHooks, h) }
}
