// Package httputil fetches graph documents over HTTP.
//
// [Client] wraps a plain http.Client with the pieces every remote read
// needs: a User-Agent, retry with backoff for transient failures, and an
// optional [cache.Cache] so a graph published at a URL is downloaded once
// per TTL instead of on every command.
//
// Usage:
//
//	c := httputil.NewClient(fileCache, httputil.DefaultTTL, nil)
//	data, err := c.Get(ctx, "https://example.com/city.json", false)
//
// Status codes map onto pathviz error codes: 404 is NOT_FOUND, other 4xx
// are INVALID_INPUT, and 5xx or transport failures are retried before they
// surface as network errors.
package httputil
