package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/pathviz/pkg/buildinfo"
	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/errors"
)

const (
	// DefaultTTL is how long a fetched document is served from the cache.
	DefaultTTL = time.Hour

	// MaxBodySize bounds a single response. Graph documents are small.
	MaxBodySize = 4 << 20

	keyPrefix = "remote:"
)

// Client performs cached, retried GET requests. Concurrent requests for the
// same URL share one fetch.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
	group   singleflight.Group
}

// NewClient creates a Client. A nil cache disables caching. Headers are
// sent with every request.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(),
		cache:   c,
		ttl:     ttl,
		headers: headers,
	}
}

// NewHTTPClient returns the http.Client used for remote reads.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get returns the body at url, from the cache unless refresh is set.
// Cache failures never fail the request.
func (c *Client) Get(ctx context.Context, url string, refresh bool) ([]byte, error) {
	key := keyPrefix + url
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return data, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		var body []byte
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			body, err = c.fetch(ctx, url)
			return err
		})
		if err != nil {
			return nil, err
		}
		_ = c.cache.Set(ctx, key, body, c.ttl)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: response larger than %d bytes", url, MaxBodySize)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", url)
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: %s: status %d", cache.ErrNetwork, url, code))
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: status %d", url, code)
	}
}
