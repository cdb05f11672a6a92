package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionguard/pkg/clientip"
	"github.com/dmitrymomot/sessionguard/pkg/logger"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "cloudflare header first",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "real ip header",
			headers:    map[string]string{"X-Real-IP": " 192.168.1.1 "},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "invalid headers fall back to remote addr",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "X-Real-IP": "999.1.1.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "ipv4 mapped ipv6 is unmapped",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.10",
			expected:   "192.0.2.10",
		},
		{
			name:       "nothing parseable",
			remoteAddr: "@",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}

func TestFromHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	req.Header.Set("Fly-Client-IP", "203.0.113.9")

	assert.Equal(t, "203.0.113.9", clientip.FromHeaders(req, "Fly-Client-IP"))
	assert.Equal(t, "10.0.0.1", clientip.FromHeaders(req))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.7", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithTextFormatter(),
		logger.WithContextExtractors(clientip.LoggerExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.7"), "msg")
	assert.Contains(t, buf.String(), "client_ip=192.0.2.7")

	buf.Reset()
	log.InfoContext(context.Background(), "msg")
	assert.NotContains(t, buf.String(), "client_ip")
}
