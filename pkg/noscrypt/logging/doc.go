// Package logging provides the small logging facade used by noscrypt contexts.
//
// Logger wraps the subset of log/slog that the binding needs. Applications can
// hand in any implementation, for example one that forwards to an existing
// logging system or drops debug output entirely.
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	c, err := noscrypt.New(noscrypt.Config{}, noscrypt.WithLogger(logging.New(slog.New(handler))))
//
// Contexts never log key material. When a record has to mention a secret, use
// Redacted so the attribute shows the placeholder instead of the value:
//
//	logger.Debug(ctx, "secret rejected", logging.Redacted("secret_key"))
//
// Discard returns a Logger that drops everything and is the default for
// contexts created without WithLogger.
package logging
