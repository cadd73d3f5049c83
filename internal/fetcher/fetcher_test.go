package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-monitor/internal/config"
	"internship-monitor/internal/observability"
)

func testSettings() *config.Settings {
	cfg := config.DefaultSettings()
	cfg.Backoff = config.BackoffConfig{MinMS: 1, MaxMS: 5, JitterPct: 20}
	return cfg
}

func TestHTTPFetcher_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	cfg := testSettings()
	f := NewHTTPFetcher(cfg, observability.NewNopLogger())

	resp, err := f.Fetch(context.Background(), srv.URL+"/internships/web-development-internship/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>ok</html>", string(resp.Body))
	assert.Equal(t, cfg.HTTP.UserAgent, got.Get("User-Agent"))
	assert.Equal(t, cfg.HTTP.AcceptLanguage, got.Get("Accept-Language"))
	assert.Equal(t, cfg.HTTP.Accept, got.Get("Accept"))
}

func TestHTTPFetcher_DecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte("compressed body"))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	f := NewHTTPFetcher(testSettings(), observability.NewNopLogger())
	resp, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "compressed body", string(resp.Body))
}

func TestHTTPFetcher_ErrorStatusNoRetryByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(testSettings(), observability.NewNopLogger())
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewHTTPFetcher(testSettings(), observability.NewNopLogger())
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrStatus)
}

func TestHTTPFetcher_RetriesWhenConfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("third time"))
	}))
	defer srv.Close()

	cfg := testSettings()
	cfg.HTTP.MaxRetries = 2
	f := NewHTTPFetcher(cfg, observability.NewNopLogger())

	resp, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "third time", string(resp.Body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPFetcher_RobotsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("page"))
	}))
	defer srv.Close()

	cfg := testSettings()
	cfg.Robots.Respect = true
	f := NewHTTPFetcher(cfg, observability.NewNopLogger())

	_, err := f.Fetch(context.Background(), srv.URL+"/private/page")
	assert.ErrorIs(t, err, ErrDisallowed)

	resp, err := f.Fetch(context.Background(), srv.URL+"/internships/")
	require.NoError(t, err)
	assert.Equal(t, "page", string(resp.Body))
}

func TestHTTPFetcher_RobotsMissingAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("page"))
	}))
	defer srv.Close()

	cfg := testSettings()
	cfg.Robots.Respect = true
	f := NewHTTPFetcher(cfg, observability.NewNopLogger())

	_, err := f.Fetch(context.Background(), srv.URL+"/anything")
	assert.NoError(t, err)
}

func TestBackoffCalculation(t *testing.T) {
	cfg := testSettings()
	cfg.Backoff = config.BackoffConfig{MinMS: 250, MaxMS: 2000, JitterPct: 20}

	f := NewHTTPFetcher(cfg, observability.NewNopLogger())

	for attempt := 1; attempt <= 5; attempt++ {
		backoff := f.calculateBackoff(attempt)
		assert.GreaterOrEqual(t, backoff, cfg.GetBackoffMin())
		assert.LessOrEqual(t, backoff, cfg.GetBackoffMax()*2)
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	assert.Less(t, time.Since(start), 30*time.Millisecond, "first wait is immediate")

	start = time.Now()
	require.NoError(t, p.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPacer_Cancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, p.Wait(ctx))
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

func TestNew_SelectsImplementation(t *testing.T) {
	cfg := testSettings()
	assert.IsType(t, &HTTPFetcher{}, New(cfg, observability.NewNopLogger()))

	cfg.Rod.Enabled = true
	assert.IsType(t, &BrowserFetcher{}, New(cfg, observability.NewNopLogger()))
}
