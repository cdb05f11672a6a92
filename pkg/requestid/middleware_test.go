package requestid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/requestid"
)

func serve(t *testing.T, header string) (ctxID, respID string) {
	t.Helper()

	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when absent", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve(t, "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, respID)
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})

	t.Run("keeps valid ids", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"abc123", "test-request_id", "550e8400-e29b-41d4-a716-446655440000"} {
			ctxID, respID := serve(t, id)
			assert.Equal(t, id, ctxID)
			assert.Equal(t, id, respID)
		}
	})

	t.Run("replaces invalid ids", func(t *testing.T) {
		t.Parallel()
		invalid := []string{
			"test@request#id",
			"test request id",
			"<script>alert(1)</script>",
			strings.Repeat("a", 129),
		}
		for _, id := range invalid {
			ctxID, respID := serve(t, id)
			assert.NotEqual(t, id, ctxID)
			assert.Equal(t, ctxID, respID)
		}
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "with id")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "id", requestid.FromContext(requestid.WithContext(context.Background(), "id")))
}
