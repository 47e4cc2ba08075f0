package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
	"github.com/example/shineycanvas/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	SaveDir   string
	Defaults  editor.Attributes
	Workspace editor.WorkspaceOptions
	Controls  scene.ControlStyle
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:     "", // Default to empty to allow fallback to Env/Default
		Defaults:  editor.DefaultAttributes(),
		Workspace: editor.DefaultWorkspaceOptions(),
		Controls:  editor.DefaultControlStyle(),
		Themes:    make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[defaults]\n")
	fmt.Fprintf(&sb, "fill = %s\n", c.Defaults.FillColor)
	fmt.Fprintf(&sb, "stroke = %s\n", c.Defaults.StrokeColor)
	fmt.Fprintf(&sb, "stroke_width = %s\n", formatFloat(c.Defaults.StrokeWidth))
	fmt.Fprintf(&sb, "stroke_dash = %s\n", formatDash(c.Defaults.StrokeDashArray))
	fmt.Fprintf(&sb, "opacity = %s\n", formatFloat(c.Defaults.Opacity))
	sb.WriteString("\n")

	sb.WriteString("[workspace]\n")
	fmt.Fprintf(&sb, "width = %s\n", formatFloat(c.Workspace.Width))
	fmt.Fprintf(&sb, "height = %s\n", formatFloat(c.Workspace.Height))
	fmt.Fprintf(&sb, "fill = %s\n", c.Workspace.Fill)
	sb.WriteString("\n")

	sb.WriteString("[controls]\n")
	fmt.Fprintf(&sb, "corner_color = %s\n", c.Controls.CornerColor)
	fmt.Fprintf(&sb, "corner_stroke_color = %s\n", c.Controls.CornerStrokeColor)
	fmt.Fprintf(&sb, "corner_style = %s\n", c.Controls.CornerStyle)
	fmt.Fprintf(&sb, "corner_size = %s\n", formatFloat(c.Controls.CornerSize))
	fmt.Fprintf(&sb, "border_color = %s\n", c.Controls.BorderColor)
	fmt.Fprintf(&sb, "border_scale_factor = %s\n", formatFloat(c.Controls.BorderScaleFactor))
	fmt.Fprintf(&sb, "transparent_corners = %v\n", c.Controls.TransparentCorners)
	fmt.Fprintf(&sb, "border_opacity_when_moving = %s\n", formatFloat(c.Controls.BorderOpacityWhenMoving))
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		for _, line := range theme.Fields(c.Themes[name]) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatDash(dash []float64) string {
	if len(dash) == 0 {
		return "none"
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = formatFloat(d)
	}
	return strings.Join(parts, ",")
}
