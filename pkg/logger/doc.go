// Package logger builds configured slog.Logger instances with context-aware
// attribute injection and a small set of attr helpers shared across edgekit
// packages.
//
//	log := logger.New(
//		logger.WithProduction("edge-proxy"),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "session committed",
//		logger.SessionID(sess.ID()),
//		logger.Duration(elapsed),
//	)
//
// Presets: WithDevelopment (text, debug), WithStaging and WithProduction
// (JSON, info), or WithEnvironment to pick by name. Context extractors run
// per log call, so request-scoped values like request ids are captured at
// the moment of logging.
package logger
