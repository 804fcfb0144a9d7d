package svg

import "github.com/matzehuels/pathviz/pkg/errors"

// Style names.
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// Palette holds the colors used for one style.
type Palette struct {
	Background  string
	Edge        string
	Weight      string
	NodeFill    string
	NodeStroke  string
	Label       string
	VisitedFill string
	PathFill    string
	PathStroke  string
}

var palettes = map[string]Palette{
	StyleSimple: {
		Background:  "#ffffff",
		Edge:        "#555555",
		Weight:      "#333333",
		NodeFill:    "#ffffff",
		NodeStroke:  "#222222",
		Label:       "#111111",
		VisitedFill: "#add8e6",
		PathFill:    "#ffa500",
		PathStroke:  "#c05000",
	},
	StyleDark: {
		Background:  "#1e1e24",
		Edge:        "#8a8a99",
		Weight:      "#d0d0dd",
		NodeFill:    "#2c2c36",
		NodeStroke:  "#e0e0ee",
		Label:       "#f5f5ff",
		VisitedFill: "#35608a",
		PathFill:    "#e0a030",
		PathStroke:  "#ffd27a",
	},
}

// Styles returns the known style names.
func Styles() []string { return []string{StyleSimple, StyleDark} }

// ValidateStyle returns an ErrCodeInvalidStyle error for unknown style names.
func ValidateStyle(name string) error {
	if _, ok := palettes[name]; !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %s (must be 'simple' or 'dark')", name)
	}
	return nil
}

// PaletteFor returns the palette for name, falling back to StyleSimple.
func PaletteFor(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[StyleSimple]
}
