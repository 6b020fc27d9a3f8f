package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/edgekit/pkg/logger"
)

// Probe verifies one dependency of the edge host, typically pg.Healthcheck
// or redis.Healthcheck for a server-backed session store.
type Probe func(context.Context) error

// Healthz returns a handler serving liveness and readiness checks. With no
// probes it answers 200 "ALIVE". With probes it runs each against the
// request context and answers 200 "READY", or 500 "NOT_READY" as soon as one
// fails.
func Healthz(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				if log != nil {
					log.ErrorContext(r.Context(), "readiness probe failed", logger.Error(err))
				}
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

// Mount builds the handler tree for an edge host: the dispatcher handler at
// the root, liveness at /livez and readiness at /readyz.
func Mount(edgeHandler http.Handler, log *slog.Logger, probes ...Probe) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/livez", Healthz(log))
	mux.Handle("/readyz", Healthz(log, probes...))
	mux.Handle("/", edgeHandler)
	return mux
}
