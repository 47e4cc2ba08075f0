package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shineycanvas/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

// ActionButton is a labelled toolbar button.
type ActionButton struct {
	label      string
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
	// sample, when positive, draws a bar of that many pixels after the label.
	sample int
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	th := b.theme
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateActive:
		bg, fg = th.ButtonBackgroundActive, th.ButtonTextActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	strokeRect(dst, b.rect, th.ButtonBorder, 1)
	baseline := b.rect.Min.Y + (b.rect.Dy()+basicfont.Face7x13.Ascent)/2 - 1
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, baseline)}
	d.DrawString(b.label)
	if b.sample > 0 {
		x0 := d.Dot.X.Ceil() + 6
		thick := min(b.sample, b.rect.Dy()-4)
		y0 := b.rect.Min.Y + (b.rect.Dy()-thick)/2
		bar := image.Rect(x0, y0, b.rect.Max.X-4, y0+thick)
		draw.Draw(dst, bar.Intersect(b.rect), &image.Uniform{fg}, image.Point{}, draw.Src)
	}
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// Swatch is a palette square.
type Swatch struct {
	color      color.RGBA
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (s *Swatch) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{s.color}, image.Point{}, draw.Src)
	switch state {
	case StateHover, StatePressed:
		draw.Draw(dst, s.rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		strokeRect(dst, s.rect, s.theme.SwatchBorder, 1)
	case StateActive:
		strokeRect(dst, s.rect, s.theme.SwatchSelected, 2)
	default:
		strokeRect(dst, s.rect, s.theme.SwatchBorder, 1)
	}
}

func (s *Swatch) Rect() image.Rectangle { return s.rect }

func (s *Swatch) SetRect(r image.Rectangle) { s.rect = r }

func (s *Swatch) Activate() {
	if s.onActivate != nil {
		s.onActivate()
	}
}

// strokeRect outlines r inside its bounds.
func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
