package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor window chrome.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Backdrop around the page
	Foreground color.RGBA // Main text color

	// Toolbar and status line
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundPress  color.RGBA
	ButtonBackgroundActive color.RGBA // The selected tool
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonBorder           color.RGBA

	// Swatches
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{241, 245, 249, 255},
		Foreground:             color.RGBA{15, 23, 42, 255},
		ToolbarBackground:      color.RGBA{255, 255, 255, 255},
		StatusBackground:       color.RGBA{226, 232, 240, 255},
		StatusText:             color.RGBA{51, 65, 85, 255},
		ButtonBackground:       color.RGBA{255, 255, 255, 255},
		ButtonBackgroundHover:  color.RGBA{241, 245, 249, 255},
		ButtonBackgroundPress:  color.RGBA{226, 232, 240, 255},
		ButtonBackgroundActive: color.RGBA{219, 234, 254, 255},
		ButtonText:             color.RGBA{15, 23, 42, 255},
		ButtonTextActive:       color.RGBA{29, 78, 216, 255},
		ButtonBorder:           color.RGBA{203, 213, 225, 255},
		SwatchBorder:           color.RGBA{100, 116, 139, 255},
		SwatchSelected:         color.RGBA{59, 130, 246, 255},
	}
}
