// Package httpserver hosts an edge middleware chain behind net/http with
// graceful shutdown, configurable timeouts and health endpoints.
//
//	d := edge.New(chain, edge.WithCookieCodec(codec))
//	handler := httpserver.Mount(d.Handler(), log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, handler); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains within cfg.ShutdownTimeout. Listen failures wrap
// ErrStart, shutdown failures wrap ErrShutdown; both compare with errors.Is.
// WithStartHook and WithStopHook run side effects around the server
// lifecycle.
package httpserver
