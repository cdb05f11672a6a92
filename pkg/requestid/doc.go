// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware keeps a client supplied X-Request-ID when it is made of at most
// 128 letters, digits, dashes or underscores, and replaces it with a UUID
// otherwise. The ID is stored in the request context and echoed back in the
// response header. LoggerExtractor plugs it into the logger package so every
// record written with the request context carries request_id:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
