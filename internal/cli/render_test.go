package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, want string
	}{
		{"", "path-A-E"},
		{"out", "out"},
		{"out.svg", "out"},
		{"dir/out.png", "dir/out"},
		{"out.txt", "out.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, basePath(tt.output, defaultBase("A", "E")), "basePath(%q)", tt.output)
	}
}

func TestOutputPaths(t *testing.T) {
	t.Run("single format keeps explicit path", func(t *testing.T) {
		got := outputPaths("drawing.txt", "path-A-E", []string{"svg"})
		assert.Equal(t, map[string]string{"svg": "drawing.txt"}, got)
	})

	t.Run("multiple formats share a base", func(t *testing.T) {
		got := outputPaths("out.svg", "path-A-E", []string{"svg", "dot", "nodelink"})
		assert.Equal(t, map[string]string{
			"svg":      "out.svg",
			"dot":      "out.dot",
			"nodelink": "out.nodelink.svg",
		}, got)
	})

	t.Run("default base", func(t *testing.T) {
		got := outputPaths("", "path-B-F", []string{"json"})
		assert.Equal(t, map[string]string{"json": "path-B-F.json"}, got)
	})
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.svg")
	require.NoError(t, writeFile(path, []byte("<svg/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}
