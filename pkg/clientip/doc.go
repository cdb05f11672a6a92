// Package clientip resolves the address of the client behind reverse proxies
// and makes it available through the request context and the logger.
//
// The fingerprint guard deliberately ignores the client address, since mobile
// and corporate clients change it mid-session. The address is still useful in
// the logs when a hijack is reported, which is what this package is for.
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
