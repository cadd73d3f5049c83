package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"internship-monitor/internal/observability"
)

// RobotsPolicy caches robots.txt per host. Unreachable or broken robots.txt
// files allow everything.
type RobotsPolicy struct {
	cache  map[string]*robotsEntry
	ttl    time.Duration
	agent  string
	mu     sync.Mutex
	logger *observability.Logger
}

type robotsEntry struct {
	data      *robotstxt.RobotsData
	expiresAt time.Time
}

func NewRobotsPolicy(ttl time.Duration, agent string, logger *observability.Logger) *RobotsPolicy {
	return &RobotsPolicy{
		cache:  make(map[string]*robotsEntry),
		ttl:    ttl,
		agent:  agent,
		logger: logger,
	}
}

func (rp *RobotsPolicy) IsAllowed(ctx context.Context, target *url.URL, client *http.Client) bool {
	host := target.Scheme + "://" + target.Host

	rp.mu.Lock()
	cached, exists := rp.cache[host]
	rp.mu.Unlock()

	if !exists || time.Now().After(cached.expiresAt) {
		data, err := rp.fetch(ctx, host, client)
		if err != nil {
			rp.logger.Debug("robots.txt unavailable, allowing", "host", host, "error", err.Error())
			return true
		}
		cached = &robotsEntry{data: data, expiresAt: time.Now().Add(rp.ttl)}

		rp.mu.Lock()
		rp.cache[host] = cached
		rp.mu.Unlock()
	}

	return cached.data.TestAgent(target.RequestURI(), rp.agent)
}

func (rp *RobotsPolicy) fetch(ctx context.Context, host string, client *http.Client) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", rp.agent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("robots.txt returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}
