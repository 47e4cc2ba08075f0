package config

import (
	"slices"
	"strings"
	"testing"

	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/designs

[defaults]
fill = #ff0000
stroke = rgba(0,0,255,0.5)
stroke_width = 4
stroke_dash = 5,5
opacity = 0.75

[workspace]
width = 600
height = 800
fill = #fafafa

[controls]
corner_style = rect
corner_size = 9
transparent_corners = true

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/designs" {
		t.Errorf("Expected save_dir '/tmp/designs', got '%s'", cfg.SaveDir)
	}

	d := cfg.Defaults
	if d.FillColor != "#ff0000" || d.StrokeColor != "rgba(0,0,255,0.5)" {
		t.Errorf("unexpected default colors: %+v", d)
	}
	if d.StrokeWidth != 4 || d.Opacity != 0.75 {
		t.Errorf("unexpected default numbers: %+v", d)
	}
	if !slices.Equal(d.StrokeDashArray, []float64{5, 5}) {
		t.Errorf("unexpected default dash: %v", d.StrokeDashArray)
	}

	if cfg.Workspace != (editor.WorkspaceOptions{Width: 600, Height: 800, Fill: "#fafafa"}) {
		t.Errorf("unexpected workspace: %+v", cfg.Workspace)
	}

	c := cfg.Controls
	if c.CornerStyle != scene.CornerRect || c.CornerSize != 9 || !c.TransparentCorners {
		t.Errorf("unexpected controls: %+v", c)
	}
	// Keys not named in the file keep the editor look.
	if c.BorderColor != editor.DefaultControlStyle().BorderColor {
		t.Errorf("border color = %q, want editor default", c.BorderColor)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseDefaultsWhenEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing here\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := editor.DefaultAttributes()
	if cfg.Defaults.FillColor != want.FillColor || cfg.Defaults.StrokeWidth != want.StrokeWidth {
		t.Errorf("defaults = %+v, want %+v", cfg.Defaults, want)
	}
	if cfg.Workspace != editor.DefaultWorkspaceOptions() {
		t.Errorf("workspace = %+v", cfg.Workspace)
	}
	if cfg.Controls != editor.DefaultControlStyle() {
		t.Errorf("controls = %+v", cfg.Controls)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad color", "[defaults]\nfill = notacolor\n", "line 2"},
		{"bad width", "[defaults]\nstroke_width = wide\n", "stroke_width"},
		{"zero workspace", "[workspace]\nwidth = 0\n", "positive"},
		{"bad corner", "[controls]\ncorner_style = star\n", "corner_style"},
		{"bad bool", "[notify]\nsave = maybe\n", "boolean"},
		{"bad dash", "[defaults]\nstroke_dash = 5,x\n", "stroke_dash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/designs

[defaults]
fill = #00ff00
stroke_dash = 10,4
opacity = 0.5

[workspace]
width = 1080
height = 1080

[controls]
corner_color = #000
border_scale_factor = 2

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Workspace != cfg2.Workspace {
		t.Errorf("Workspace mismatch: %+v vs %+v", cfg.Workspace, cfg2.Workspace)
	}
	if cfg.Controls != cfg2.Controls {
		t.Errorf("Controls mismatch: %+v vs %+v", cfg.Controls, cfg2.Controls)
	}
	if cfg.Defaults.FillColor != cfg2.Defaults.FillColor || cfg.Defaults.Opacity != cfg2.Defaults.Opacity {
		t.Errorf("Defaults mismatch: %+v vs %+v", cfg.Defaults, cfg2.Defaults)
	}
	if !slices.Equal(cfg.Defaults.StrokeDashArray, cfg2.Defaults.StrokeDashArray) {
		t.Errorf("Dash mismatch: %v vs %v", cfg.Defaults.StrokeDashArray, cfg2.Defaults.StrokeDashArray)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}
