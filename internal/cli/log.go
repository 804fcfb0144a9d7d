// Package cli implements the pathviz command-line interface.
//
// # Commands
//
//   - solve: print the shortest path, its distance, and the visit order
//   - render: write svg, dot, nodelink, json, pdf, or png outputs
//   - animate: replay the search in the terminal
//   - serve: serve the animated page and a JSON API over HTTP
//   - mcp: expose the engine as MCP tools over stdio
//   - history: list, show, and clear past runs
//   - cache: clear, prune, or locate the artifact cache
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/pathviz/config.toml (or --config);
// flags that are set explicitly win over the file.
//
// # Logging
//
// --verbose (-v) enables debug records and --quiet (-q) keeps only warnings.
// Loggers are passed through context.Context so helpers can log without a
// CLI handle.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped ("15:04:05.00") records at level to w.
// Logs always go to stderr in main so stdout stays clean for piped output
// and the MCP protocol stream.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took, e.g. "Rendered 2 output(s) (14ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
