package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/shineycanvas/internal/scene"
	"github.com/example/shineycanvas/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "defaults":
			err = setDefaultsField(cfg, key, value)
		case currentSection == "workspace":
			err = setWorkspaceField(cfg, key, value)
		case currentSection == "controls":
			err = setControlsField(cfg, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d: error in section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setDefaultsField(cfg *Config, key, value string) error {
	d := &cfg.Defaults
	var err error
	switch key {
	case "fill":
		d.FillColor, err = colorValue(key, value)
	case "stroke":
		d.StrokeColor, err = colorValue(key, value)
	case "stroke_width":
		d.StrokeWidth, err = floatValue(key, value)
	case "stroke_dash":
		d.StrokeDashArray, err = dashValue(value)
	case "opacity":
		d.Opacity, err = floatValue(key, value)
	}
	return err
}

func setWorkspaceField(cfg *Config, key, value string) error {
	w := &cfg.Workspace
	var err error
	switch key {
	case "width":
		w.Width, err = positiveValue(key, value)
	case "height":
		w.Height, err = positiveValue(key, value)
	case "fill":
		w.Fill, err = colorValue(key, value)
	}
	return err
}

func setControlsField(cfg *Config, key, value string) error {
	c := &cfg.Controls
	var err error
	switch key {
	case "corner_color":
		c.CornerColor, err = colorValue(key, value)
	case "corner_stroke_color":
		c.CornerStrokeColor, err = colorValue(key, value)
	case "border_color":
		c.BorderColor, err = colorValue(key, value)
	case "corner_style":
		switch style := scene.CornerStyle(strings.ToLower(value)); style {
		case scene.CornerRect, scene.CornerCircle:
			c.CornerStyle = style
		default:
			err = fmt.Errorf("invalid corner_style %q (want rect or circle)", value)
		}
	case "corner_size":
		c.CornerSize, err = positiveValue(key, value)
	case "border_scale_factor":
		c.BorderScaleFactor, err = floatValue(key, value)
	case "transparent_corners":
		c.TransparentCorners, err = boolValue(key, value)
	case "border_opacity_when_moving":
		c.BorderOpacityWhenMoving, err = floatValue(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := boolValue(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func boolValue(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func floatValue(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}

func positiveValue(key, value string) (float64, error) {
	f, err := floatValue(key, value)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("key %s must be positive, got %s", key, value)
	}
	return f, nil
}

func colorValue(key, value string) (string, error) {
	if _, err := scene.ParseColor(value); err != nil {
		return "", fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	return value, nil
}

func dashValue(value string) ([]float64, error) {
	if value == "" || strings.EqualFold(value, "none") {
		return nil, nil
	}
	var dash []float64
	for _, p := range strings.Split(value, ",") {
		f, err := floatValue("stroke_dash", strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		dash = append(dash, f)
	}
	return dash, nil
}
