package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/history"
	"github.com/matzehuels/pathviz/pkg/httputil"
	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/render/svg"
)

// Config is the on-disk configuration. Command-line flags win over it.
//
//	start = "A"
//	end = "E"
//	graph = "~/graphs/city.json"
//	interval = "500ms"
//	startup_delay = "3s"
//
//	[cache]
//	kind = "redis"
//	redis_addr = "localhost:6379"
//
//	[history]
//	kind = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Start        string                 `toml:"start"`
	End          string                 `toml:"end"`
	Graph        string                 `toml:"graph"`
	Style        string                 `toml:"style"`
	Formats      []string               `toml:"formats"`
	Interval     duration               `toml:"interval"`
	StartupDelay duration               `toml:"startup_delay"`
	LabelOffsets []pipeline.LabelOffset `toml:"label_offsets"`

	Cache   cache.Config   `toml:"cache"`
	History history.Config `toml:"history"`
	Serve   ServeConfig    `toml:"serve"`
}

// ServeConfig configures `pathviz serve`.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes Go duration strings such as "500ms".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() Config {
	return Config{
		Start:        graph.ReferenceStart,
		End:          graph.ReferenceEnd,
		Style:        svg.StyleSimple,
		Formats:      []string{pipeline.FormatSVG},
		Interval:     duration{anim.DefaultInterval},
		StartupDelay: duration{anim.DefaultStartupDelay},
		Cache:        cache.Config{Kind: cache.KindFile},
		Serve:        ServeConfig{Addr: "localhost:8080"},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/pathviz/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the user named it explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "config file %s not found", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := svg.ValidateStyle(cfg.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return err
	}
	if cfg.Interval.Duration <= 0 {
		return fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.StartupDelay.Duration < 0 {
		return fmt.Errorf("startup_delay must not be negative, got %s", cfg.StartupDelay)
	}
	switch cfg.Cache.Kind {
	case cache.KindFile, cache.KindRedis, cache.KindNone, "":
	default:
		return fmt.Errorf("cache.kind must be file, redis, or none, got %q", cfg.Cache.Kind)
	}
	switch cfg.History.Kind {
	case history.KindSQLite, history.KindMongo, "":
	default:
		return fmt.Errorf("history.kind must be sqlite or mongo, got %q", cfg.History.Kind)
	}
	return nil
}

// loadGraph returns the graph named by path, or the reference scenario with
// its label offsets when path is empty. Paths starting with http:// or
// https:// are downloaded and cached in the artifact cache directory.
func loadGraph(ctx context.Context, path string) (*graph.Graph, []pipeline.LabelOffset, error) {
	if path == "" {
		return graph.Reference(), pipeline.ReferenceLabelOffsets, nil
	}

	var (
		data []byte
		err  error
	)
	if httputil.IsURL(path) {
		data, err = remoteClient().Get(ctx, path, false)
	} else {
		data, err = os.ReadFile(expandHome(path))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read graph: %w", err)
	}

	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode %s", path)
	}
	g, err := graph.Import(doc)
	if err != nil {
		return nil, nil, err
	}
	return g, nil, nil
}

// remoteClient caches downloads next to the artifacts. Without a usable
// cache directory every read goes to the network.
func remoteClient() *httputil.Client {
	var c cache.Cache
	if dir, err := cacheDir(); err == nil {
		if fc, err := cache.NewFileCache(dir); err == nil {
			c = fc
		}
	}
	return httputil.NewClient(c, httputil.DefaultTTL, nil)
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
