package fingerprint

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	userAgentSeparator = " "
	acceptSeparator    = ","

	// absentToken stands in for a header that is missing or empty so that
	// token selection always has at least one candidate.
	absentToken = ""
)

// Headers holds the request metadata the fingerprint is derived from.
type Headers struct {
	UserAgent string
	Accept    string
}

// HeadersFromRequest extracts the User-Agent and Accept headers from r.
func HeadersFromRequest(r *http.Request) Headers {
	if r == nil {
		return Headers{}
	}
	return Headers{
		UserAgent: r.UserAgent(),
		Accept:    r.Header.Get("Accept"),
	}
}

// Record is the value persisted in the session under the guard's field key.
type Record struct {
	Fingerprint string `json:"fingerprint"`
	Timestamp   int64  `json:"timestamp"`
}

// IsEmpty reports whether the record carries no fingerprint.
func (r Record) IsEmpty() bool {
	return r.Fingerprint == ""
}

// Compute derives the fingerprint for the given headers and timestamp.
// The timestamp picks one User-Agent token and one Accept token, so only the
// timestamp has to be stored to reproduce the value later.
func Compute(h Headers, timestamp int64, alg Algorithm) string {
	uaTokens := tokenize(h.UserAgent, userAgentSeparator)
	acceptTokens := tokenize(h.Accept, acceptSeparator)

	ts := strconv.FormatInt(timestamp, 10)
	ua := uaTokens[selectIndex(timestamp, len(uaTokens))]
	accept := acceptTokens[selectIndex(timestamp, len(acceptTokens))]

	return alg.Sum(ua + accept + ts)
}

// tokenize splits value on sep and never returns an empty slice.
func tokenize(value, sep string) []string {
	if value == "" {
		return []string{absentToken}
	}
	return strings.Split(value, sep)
}

// selectIndex maps timestamp onto [0, n). Negative timestamps are reduced as
// their unsigned bit pattern, which keeps the result in range and stable.
func selectIndex(timestamp int64, n int) int {
	if n <= 1 {
		return 0
	}
	return int(uint64(timestamp) % uint64(n))
}
