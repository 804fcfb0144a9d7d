// Package history records executed queries so `pathviz history` can list
// past runs.
//
// Two backends implement [Log]: [Store] keeps a local SQLite file and is the
// default for the CLI, and [MongoStore] shares one collection between
// several `pathviz serve` instances.
package history

import (
	"context"
	"time"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Run is one executed query.
type Run struct {
	ID        string        `json:"id"`
	At        time.Time     `json:"at"`
	GraphHash string        `json:"graph_hash"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Path      []string      `json:"path"`
	Distance  float64       `json:"distance"` // +Inf when unreachable
	Visited   int           `json:"visited"`
	Formats   []string      `json:"formats,omitempty"`
	Duration  time.Duration `json:"duration"`
	CacheHit  bool          `json:"cache_hit"`
}

// Found reports whether the run reached its end node.
func (r Run) Found() bool {
	return len(r.Path) > 0 && r.Path[0] == r.Start
}


// Log is a run log backend.
type Log interface {
	Record(ctx context.Context, r Run) error
	List(ctx context.Context, limit int) ([]Run, error)
	Get(ctx context.Context, id string) (Run, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// Kind names a Log backend.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindMongo  Kind = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Kind     Kind   `toml:"kind"`
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`      // sqlite file, default DefaultPath()
	MongoURI string `toml:"mongo_uri"` // e.g. mongodb://localhost:27017
	Database string `toml:"database"`  // mongo database, default "pathviz"
}

// OpenLog opens the backend named by cfg.Kind. An empty kind means sqlite.
func OpenLog(ctx context.Context, cfg Config) (Log, error) {
	switch cfg.Kind {
	case KindSQLite, "":
		path := cfg.Path
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMongo:
		s, err := OpenMongo(ctx, cfg.MongoURI, cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown history kind %q (must be sqlite or mongo)", cfg.Kind)
	}
}
