// Package server exposes the pipeline over HTTP and over MCP.
//
// The HTTP side serves the animated page (the static drawing, then the
// search replayed with CSS timing), the raw artifacts, and a small JSON API.
// The MCP side registers tools that run queries for an assistant over stdio.
// Both share one [pipeline.Runner], so cache and history behave exactly as
// they do for the CLI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

// Config wires a Server.
type Config struct {
	Graph    *graph.Graph
	Runner   *pipeline.Runner
	Defaults pipeline.Options // query defaults; request parameters override them
	Logger   *log.Logger
	Version  string
}

// Server serves one graph.
type Server struct {
	graph    *graph.Graph
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	version  string
}

// New creates a Server. A nil runner gets an uncached one.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, nil, cfg.Logger)
	}
	if cfg.Graph == nil {
		cfg.Graph = graph.Reference()
		if cfg.Defaults.LabelOffsets == nil {
			cfg.Defaults.LabelOffsets = pipeline.ReferenceLabelOffsets
		}
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Server{
		graph:    cfg.Graph,
		runner:   cfg.Runner,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		version:  cfg.Version,
	}
}

// ListenAndServe serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
