// Package logger builds *slog.Logger instances with a consistent set of
// attributes and optional context-driven enrichment.
//
// New is the single factory. Options pick the format (JSON or text), the
// level, static attributes, and ContextExtractor callbacks. Extractors run on
// every *Context logging call through the LogHandlerDecorator New installs, so request-scoped
// values such as the request ID or client IP show up on records written deep
// inside the fingerprint guard without being threaded through by hand.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("guarddemo"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "session hijack detected",
//	    logger.Component("fingerprint"),
//	    logger.SessionID(id),
//	)
//
// # Configuration
//
// Config reads APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT. NewFromConfig
// applies the environment defaults first and the explicit overrides after.
//
// # Attributes
//
// SessionID never logs the raw session identifier; it writes a short prefix
// of the identifier's SHA-256 digest, enough to correlate records without
// handing a bearer token to whoever reads the logs. Error and Errors return an
// empty attribute for nil errors so callers can skip the nil check.
package logger
