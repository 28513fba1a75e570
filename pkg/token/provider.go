package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultRequestTimeout = 10 * time.Second

// FetchFunc retrieves a fresh token from the backing service. Implementations
// must not route through middleware that itself demands a token, or the
// provider deadlocks on its own fetch.
type FetchFunc func(ctx context.Context) (string, error)

// Option customises the provider configuration.
type Option func(*Provider)

// WithEndpoint points the default HTTP fetcher at the given token URL.
func WithEndpoint(url string) Option {
	return func(p *Provider) {
		p.endpoint = url
	}
}

// WithHTTPClient overrides the HTTP client used by the default fetcher. The
// client is used as supplied; callers are responsible for keeping token-aware
// interceptors off its transport.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// WithFetchFunc replaces the fetch strategy entirely. Useful for tests and
// for callers whose token endpoint is not HTTP-shaped.
func WithFetchFunc(fetch FetchFunc) Option {
	return func(p *Provider) {
		p.fetch = fetch
	}
}

// WithRequestTimeout bounds each fetch issued by the default HTTP fetcher.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.timeout = timeout
	}
}

// Provider caches a shared credential and guarantees at most one outstanding
// fetch. Ensure collapses concurrent demand into a single call; Invalidate
// drops the cache without touching in-flight work.
type Provider struct {
	mu     sync.Mutex
	cached string
	valid  bool

	group    singleflight.Group
	fetch    FetchFunc
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewProvider constructs a Provider applying any provided options. Without a
// custom fetch func, a plain HTTP client fetches the configured endpoint; the
// client deliberately carries no transport decoration so the fetch bypasses
// auth interceptors.
func NewProvider(options ...Option) *Provider {
	p := &Provider{
		timeout: defaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	if p.fetch == nil {
		p.fetch = p.fetchHTTP
	}
	return p
}

// Ensure returns the cached token when present, otherwise joins or starts the
// single in-flight fetch. The boolean reports whether a token is available;
// fetch failures surface as an absent token, never as an error, and leave the
// cache empty.
func (p *Provider) Ensure(ctx context.Context) (string, bool) {
	p.mu.Lock()
	if p.valid {
		cached := p.cached
		p.mu.Unlock()
		return cached, true
	}
	p.mu.Unlock()

	value, err, _ := p.group.Do("token", func() (any, error) {
		fetched, err := p.fetch(ctx)
		if err != nil {
			return "", err
		}
		p.mu.Lock()
		p.cached = fetched
		p.valid = true
		p.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return "", false
	}

	fetched, ok := value.(string)
	if !ok || fetched == "" {
		return "", false
	}
	return fetched, true
}

// Invalidate clears the cached token. In-flight fetches are unaffected; the
// next Ensure after they settle starts over.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.cached = ""
	p.valid = false
	p.mu.Unlock()
}

// Cached reports the current cache contents without triggering a fetch.
func (p *Provider) Cached() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cached, p.valid
}

func (p *Provider) fetchHTTP(ctx context.Context) (string, error) {
	if p.endpoint == "" {
		return "", errors.New("token provider: endpoint is not configured")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("token provider: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("token provider: decode payload: %w", err)
	}
	if payload.Token == "" {
		return "", errors.New("token provider: payload carries no token")
	}
	return payload.Token, nil
}
