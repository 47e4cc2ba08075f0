// Package display finds the monitor the editor window opens on and sizes the
// window from it.
package display

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
)

// Monitor describes an individual monitor in the desktop layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// FallbackSize is used when no monitor can be queried.
var FallbackSize = image.Pt(1280, 900)

var errNoMonitors = errors.New("no monitors available")

// Find matches selector against monitors. An empty selector or "primary"
// picks the primary monitor, "#N" or "N" picks by index, anything else is a
// case-insensitive name substring.
func Find(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// WindowSize scales the monitor down by fraction, keeping at least 320x240.
func WindowSize(m Monitor, fraction float64) image.Point {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	w := int(float64(m.Rect.Dx()) * fraction)
	h := int(float64(m.Rect.Dy()) * fraction)
	return image.Pt(max(w, 320), max(h, 240))
}

// InitialWindowSize queries the desktop and sizes a window for the selected
// monitor, falling back to FallbackSize when the desktop cannot be reached.
func InitialWindowSize(selector string, fraction float64) image.Point {
	monitors, err := ListMonitors()
	if err != nil {
		log.Printf("list monitors: %v", err)
		return FallbackSize
	}
	mon, err := Find(monitors, selector)
	if err != nil {
		log.Printf("select monitor: %v", err)
		return FallbackSize
	}
	return WindowSize(mon, fraction)
}
