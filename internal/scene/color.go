package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS-style colour string into an NRGBA value. It
// accepts named colours, "transparent", #rgb, #rrggbb, #rrggbbaa and the
// rgb()/rgba() functional forms. Alpha in rgba() is a 0..1 fraction.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.NRGBA{}, fmt.Errorf("color cannot be empty")
	}
	if name == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:], s)
	}
	if strings.HasPrefix(name, "rgb") {
		return parseFunctional(name, s)
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseHex(hex, orig string) (color.NRGBA, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
	}
	if len(hex) == 6 {
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

func parseFunctional(name, orig string) (color.NRGBA, error) {
	open := strings.IndexByte(name, '(')
	if open < 0 || !strings.HasSuffix(name, ")") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
	}
	fn := strings.TrimSpace(name[:open])
	parts := strings.Split(name[open+1:len(name)-1], ",")
	want := 3
	if fn == "rgba" {
		want = 4
	} else if fn != "rgb" {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want %d components", orig, want)
	}
	var out [4]uint8
	out[3] = 255
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
		}
		out[i] = uint8(v)
	}
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", orig)
		}
		out[3] = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}

// HexColor formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
