package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.Context(), "Cleared", (*cache.FileCache).Clear)
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.Context(), "Pruned", (*cache.FileCache).Prune)
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (c *CLI) sweepCache(ctx context.Context, verb string, sweep func(*cache.FileCache, context.Context) (int, error)) error {
	if kind := c.cfg.Cache.Kind; kind != "" && kind != cache.KindFile {
		printWarning("Cache backend is %q; only the file cache can be swept", kind)
		printNextStep("Expire redis keys with", "redis-cli --scan --pattern 'artifact:*'")
		return nil
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}

	count, err := sweep(fc.(*cache.FileCache), ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("%s %d cached artifacts", verb, count)
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) fileCacheDir() (string, error) {
	if dir := c.cfg.Cache.Dir; dir != "" {
		return expandHome(dir), nil
	}
	return cacheDir()
}
