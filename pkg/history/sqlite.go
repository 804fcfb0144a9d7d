package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Store is a SQLite-backed run log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns $XDG_DATA_HOME/pathviz/history.db, falling back to
// ~/.local/share.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "pathviz", "history.db"), nil
}

// Open opens (or creates) the database at path and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One connection: every pooled connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	version := 0
	// Missing table means a fresh database.
	_ = s.db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS runs (
				id          TEXT PRIMARY KEY,
				at          TEXT NOT NULL,
				graph_hash  TEXT NOT NULL,
				start_node  TEXT NOT NULL,
				end_node    TEXT NOT NULL,
				path        TEXT NOT NULL,
				distance    REAL,
				visited     INTEGER NOT NULL,
				formats     TEXT NOT NULL DEFAULT '',
				duration_ns INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(at);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return err
		}
	}

	if version < 2 {
		_, err := s.db.Exec(`
			ALTER TABLE runs ADD COLUMN cache_hit INTEGER NOT NULL DEFAULT 0;
			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}

// Record stores r. A zero At is set to the current time.
func (s *Store) Record(ctx context.Context, r Run) error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "history run has no id")
	}
	if r.At.IsZero() {
		r.At = s.now()
	}
	path, err := json.Marshal(r.Path)
	if err != nil {
		return err
	}
	// SQLite has no infinity literal; NULL stands for unreachable.
	var dist any
	if !math.IsInf(r.Distance, 0) && !math.IsNaN(r.Distance) {
		dist = r.Distance
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, at, graph_hash, start_node, end_node, path, distance, visited, formats, duration_ns, cache_hit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.At.UTC().Format(time.RFC3339Nano), r.GraphHash, r.Start, r.End, string(path),
		dist, r.Visited, strings.Join(r.Formats, ","), int64(r.Duration), r.CacheHit)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A limit <= 0 means 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, graph_hash, start_node, end_node, path, distance, visited, formats, duration_ns, cache_hit
		FROM runs ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the run whose id is or starts with id. Logs print the first
// eight characters, so those are enough to look a run up.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	if id == "" {
		return Run{}, errors.New(errors.ErrCodeInvalidInput, "run id is required")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, graph_hash, start_node, end_node, path, distance, visited, formats, duration_ns, cache_hit
		FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(found) {
	case 0:
		return Run{}, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	case 1:
		return found[0], nil
	default:
		return Run{}, errors.New(errors.ErrCodeInvalidInput, "run id %s is ambiguous", id)
	}
}

// Clear deletes every run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r        Run
		at       string
		path     string
		dist     sql.NullFloat64
		formats  string
		duration int64
	)
	if err := sc.Scan(&r.ID, &at, &r.GraphHash, &r.Start, &r.End, &path, &dist, &r.Visited, &formats, &duration, &r.CacheHit); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad timestamp %q: %w", r.ID, at, err)
	}
	r.At = t
	if err := json.Unmarshal([]byte(path), &r.Path); err != nil {
		return Run{}, fmt.Errorf("run %s: bad path: %w", r.ID, err)
	}
	r.Distance = math.Inf(1)
	if dist.Valid {
		r.Distance = dist.Float64
	}
	if formats != "" {
		r.Formats = strings.Split(formats, ",")
	}
	r.Duration = time.Duration(duration)
	return r, nil
}

var _ Log = (*Store)(nil)
