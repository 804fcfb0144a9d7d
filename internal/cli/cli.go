package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/buildinfo"
	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/history"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pathviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pathviz finds and animates shortest paths in weighted graphs",
		Long:         `pathviz runs Dijkstra's algorithm on a small weighted undirected graph and renders the result as an SVG drawing, a Graphviz diagram, a terminal animation, or a live web page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pathviz/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The caller closes it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, func(), error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewScopedKeyer(nil, c.cfg.Cache.Namespace)

	var rec pipeline.Recorder
	var store history.Log
	if !c.cfg.History.Disabled {
		store, err = c.openHistory(ctx)
		if err != nil {
			// History is best effort; a locked or unreachable store must
			// not block rendering.
			c.Logger.Warn("history disabled", "error", err)
		} else {
			rec = store
		}
	}

	runner := pipeline.NewRunner(ch, keyer, rec, c.Logger)
	closeFn := func() {
		runner.Close()
		if store != nil {
			store.Close()
		}
	}
	return runner, closeFn, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.cfg.Cache
	if cfg.Kind == cache.KindFile || cfg.Kind == "" {
		dir, err := c.fileCacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

func (c *CLI) openHistory(ctx context.Context) (history.Log, error) {
	cfg := c.cfg.History
	if cfg.Path != "" {
		cfg.Path = expandHome(cfg.Path)
	}
	return history.OpenLog(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pathviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/pathviz/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
