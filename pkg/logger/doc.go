// Package logger builds *slog.Logger instances for formkit binaries and
// provides attribute helpers that keep key names consistent.
//
// New applies functional options on top of a JSON, info level, stderr default
// and, when context extractors are configured, wraps the handler so request
// scoped values are pulled out of the context on every record. The formkit
// binaries install formapi.RequestIDExtractor this way:
//
//	log := logger.New(
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithFormat(logger.Format(cfg.LogFormat)),
//	    logger.WithService("formkit", version),
//	    logger.WithContextExtractors(formapi.RequestIDExtractor()),
//	)
//
//	log.DebugContext(ctx, "validation completed",
//	    logger.Rule("Main"),
//	    logger.Outcome(res.HasErrors),
//	    logger.Duration(time.Since(start)),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally. Library packages that accept a logger default to
// Discard.
package logger
