package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
// Only deploy behind a proxy that overwrites them; clients can forge any of
// these headers.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address using DefaultHeaders.
func GetIP(r *http.Request) string {
	return FromHeaders(r, DefaultHeaders...)
}

// FromHeaders returns the first valid address found in the given headers,
// or the host part of r.RemoteAddr. Comma separated values yield their first
// valid entry. The result is normalized; "" means nothing parsed.
func FromHeaders(r *http.Request, headers ...string) string {
	for _, h := range headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		for part := range strings.SplitSeq(value, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
