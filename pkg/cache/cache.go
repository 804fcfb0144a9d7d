// Package cache stores rendered artifacts keyed by graph, query, and output
// options.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (used by `pathviz serve`)
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// itself failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact is how long rendered outputs stay cached. Artifacts are a
// pure function of their key, so expiry only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour

// Kind names a cache backend in configuration.
type Kind string

const (
	KindFile  Kind = "file"
	KindRedis Kind = "redis"
	KindNone  Kind = "none"
)

// Config selects and configures a backend.
type Config struct {
	Kind      Kind   `toml:"kind"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	Namespace string `toml:"namespace"`
}

// Open builds the backend described by cfg. An empty Kind means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Kind {
	case KindNone:
		return NewNullCache(), nil
	case KindRedis:
		return NewRedisCache(ctx, cfg.RedisAddr)
	case KindFile, "":
		return NewFileCache(cfg.Dir)
	default:
		return nil, ErrUnknownKind
	}
}
