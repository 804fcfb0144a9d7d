package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathviz/pkg/graph"
)

func newTestServer(t *testing.T, g *graph.Graph) *httptest.Server {
	t.Helper()
	s := New(Config{Graph: g, Logger: log.New(io.Discard), Version: "test"})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"version": "test"`)
}

func TestAPIPath(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/api/path")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Pathviz-Run"))

	var out struct {
		Path     []string `json:"path"`
		Distance *float64 `json:"distance"`
		Found    bool     `json:"found"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, []string{"A", "B", "D", "E"}, out.Path)
	require.NotNil(t, out.Distance)
	assert.Equal(t, 5.0, *out.Distance)
	assert.True(t, out.Found)
}

func TestAPIPathQuery(t *testing.T) {
	ts := newTestServer(t, nil)
	_, body := get(t, ts.URL+"/api/path?from=E&to=A")
	assert.Contains(t, body, `"start": "E"`)
}

func TestAPIPathErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"unknown end", "?to=Z", http.StatusNotFound, "UNKNOWN_NODE"},
		{"unknown start", "?from=Q", http.StatusNotFound, "UNKNOWN_NODE"},
		{"bad style", "?style=neon", http.StatusBadRequest, "INVALID_STYLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/path"+tt.query)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.code)
		})
	}
}

func TestAPIGraph(t *testing.T) {
	ts := newTestServer(t, nil)
	_, body := get(t, ts.URL+"/api/graph")
	var doc graph.Document
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	assert.Len(t, doc.Nodes, 5)
	assert.Len(t, doc.Edges, 6)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/render/dot")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz"))
	assert.Contains(t, body, "graph G {")

	resp, body = get(t, ts.URL+"/render/svg?animate=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "ease-in")

	resp, _ = get(t, ts.URL+"/render/gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPage(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, `id="node-E"`)
	assert.Contains(t, body, "A &rarr; B &rarr; D &rarr; E")
	assert.Contains(t, body, "<option selected>A</option>")
}

func TestPageUnreachable(t *testing.T) {
	g, err := graph.WithIsolated(graph.Reference(), "F", 600, 100)
	require.NoError(t, err)
	ts := newTestServer(t, g)

	_, body := get(t, ts.URL+"/?to=F")
	assert.Contains(t, body, "No path from A to F")
}
