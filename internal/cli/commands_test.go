package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// runCLI executes the root command in an isolated XDG environment and
// returns everything written to stdout.
func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })

	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestSolveCommandJSON(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "solve", "--json")
	require.NoError(t, err)

	var doc struct {
		Result struct {
			Path    []string `json:"path"`
			Visited []string `json:"visited"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"A", "B", "D", "E"}, doc.Result.Path)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, doc.Result.Visited)
}

func TestSolveCommandPositional(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "solve", "C", "A", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "C → B → A")
}

func TestSolveCommandUnknownNode(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "solve", "--to", "Z")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownNode), "err = %v", err)
}

func TestRenderCommandAndHistory(t *testing.T) {
	home := t.TempDir()
	outDir := t.TempDir()

	out, err := runCLI(t, home, "render", "-f", "svg,dot", "-o", filepath.Join(outDir, "query"))
	require.NoError(t, err)
	assert.Contains(t, out, "query.svg")

	svg, err := os.ReadFile(filepath.Join(outDir, "query.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `id="node-E"`)
	dot, err := os.ReadFile(filepath.Join(outDir, "query.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(dot), "graph G {")

	// Second run is served from the file cache.
	out, err = runCLI(t, home, "render", "-f", "svg,dot", "-o", filepath.Join(outDir, "query"))
	require.NoError(t, err)
	assert.Contains(t, out, iconCached)

	out, err = runCLI(t, home, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "svg,dot")
	assert.Contains(t, out, iconCached)

	out, err = runCLI(t, home, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 2 cached artifacts")

	out, err = runCLI(t, home, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 runs")
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "render", "-f", "dot", "-o", "-", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, `"A" -- "B"`)
}

func TestConfigFlagMissingFile(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "--config", "/nonexistent/pathviz.toml", "solve")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
}

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	out, err := runCLI(t, home, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache", appName)+"\n", out)
}
