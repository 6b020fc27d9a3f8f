package httpserver

import "errors"

var (
	// ErrStart wraps listener and startup failures.
	ErrStart = errors.New("httpserver.failed_to_start")
	// ErrShutdown wraps graceful shutdown failures.
	ErrShutdown = errors.New("httpserver.failed_to_shutdown")
	// ErrAlreadyRunning is joined with ErrStart when Run is called twice.
	ErrAlreadyRunning = errors.New("httpserver.already_running")
)
