package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/history"
	"github.com/matzehuels/pathviz/pkg/observability"
	"github.com/matzehuels/pathviz/pkg/search"
)

// Recorder persists finished runs. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, r history.Run) error
}

// Runner executes queries with caching and history.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// (the HTTP server does).
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History Recorder
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer, and a nil recorder disables history.
func NewRunner(c cache.Cache, keyer cache.Keyer, rec Recorder, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		History: rec,
		Logger:  logger,
	}
}

// Execute runs search → render → record for one query on g.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Stats: Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	data, err := graph.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(data)

	// Stage 1: Search
	searchStart := time.Now()
	res, err := search.New(g, search.WithInterval(opts.Interval)).ShortestPath(ctx, opts.Start, opts.End)
	if err != nil {
		return nil, err
	}
	result.Search = res
	result.Stats.SearchTime = time.Since(searchStart)

	logger.Info("searched",
		"start", res.Start,
		"end", res.End,
		"found", res.Found(),
		"distance", res.Distance,
		"visited", len(res.Visited))

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, g, res, result.GraphHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	// Stage 3: Record
	if r.History != nil {
		run := history.Run{
			ID:        result.RunID,
			GraphHash: result.GraphHash,
			Start:     res.Start,
			End:       res.End,
			Path:      res.Path,
			Distance:  res.Distance,
			Visited:   len(res.Visited),
			Formats:   opts.Formats,
			Duration:  result.Stats.SearchTime + result.Stats.RenderTime,
			CacheHit:  hit,
		}
		if err := r.History.Record(ctx, run); err != nil {
			logger.Warn("history not recorded", "error", err)
		}
	}

	return result, nil
}

// RenderWithCacheInfo returns every requested artifact, reading the cache
// first unless opts.Refresh is set. The bool reports whether all formats
// came from the cache. Missing formats are rendered concurrently.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, res *search.Result, graphHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := r.renderAll(ctx, g, res, missing, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "error", err)
		} else {
			hooks.OnCacheSet(ctx, format, len(data))
		}
		artifacts[format] = data
	}
	return artifacts, false, nil
}

func (r *Runner) renderAll(ctx context.Context, g *graph.Graph, res *search.Result, formats []string, opts Options) (map[string][]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, formats)
	began := time.Now()

	var mu sync.Mutex
	out := make(map[string][]byte, len(formats))

	eg, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		eg.Go(func() error {
			data, err := Render(gctx, g, res, format, opts)
			if err != nil {
				return renderError(format, err)
			}
			mu.Lock()
			out[format] = data
			mu.Unlock()
			opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
			return nil
		})
	}
	err := eg.Wait()
	hooks.OnRenderComplete(ctx, formats, time.Since(began), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
