package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/pathviz/pkg/errors"
)

func TestConvertMissingBinary(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "pathviz-no-such-converter"
	t.Cleanup(func() { rsvgBinary = old })

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if err == nil {
		t.Fatal("ToPDF() expected error")
	}
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
	if !strings.Contains(err.Error(), "librsvg") {
		t.Errorf("error should mention librsvg: %v", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	png, err := ToPNG(context.Background(), svg, 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("ToPNG() output is not a PNG")
	}
}
