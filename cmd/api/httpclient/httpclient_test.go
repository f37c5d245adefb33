package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-pager/cmd/api/trace"
)

func TestNewRequest(t *testing.T) {
	c := NewBaseClient("http://localhost:3000/base")

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/api/v1/addresses", url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/base/api/v1/addresses?page=2", req.URL.String())

	_, err = c.NewRequest(context.Background(), http.MethodGet, "/api/v1/addresses?page=2", nil)
	assert.Error(t, err)
}

func TestRoundTripperPropagatesSpans(t *testing.T) {
	var spans []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		spans = append(spans, r.Header.Get("X-Span-Id"))
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL)
	ctx := trace.WithRequestAndSpan(context.Background(), "req-1", 0)
	for i := 0; i < 2; i++ {
		req, err := c.NewRequest(ctx, http.MethodGet, "/health", nil)
		require.NoError(t, err)
		resp, err := c.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Empty(t, req.Header.Get("X-Span-Id"))
	}
	assert.Equal(t, []string{"1", "2"}, spans)
}
