package appstate

import (
	"fmt"
	"image/color"
	"strings"
)

// PaletteColor is a named swatch offered in the toolbar.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
	{"Slate", color.RGBA{100, 116, 139, 255}},
	{"Sky", color.RGBA{59, 130, 246, 255}},
}

// Palette returns a copy of the toolbar swatches.
func Palette() []PaletteColor {
	return append([]PaletteColor(nil), palette...)
}

// paintValue formats c the way the fill and stroke commands accept it.
func paintValue(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var strokeWidths = []float64{0, 1, 2, 4, 8, 12}

type dashPreset struct {
	label, value string
}

var dashPresets = []dashPreset{
	{"solid", "none"},
	{"dash 5,5", "5,5"},
	{"dash 10,5", "10,5"},
	{"dot 2,4", "2,4"},
}

var opacityLevels = []float64{1, 0.75, 0.5, 0.25}

func samePaint(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
