// Package render holds raster effects the vector painter has no primitive
// for.
package render

import (
	"image"
	"image/color"
)

// Shadow is a blurred, tinted copy of a silhouette drawn beneath it.
type Shadow struct {
	// Blur is the box radius in pixels.
	Blur   int
	Offset image.Point
	// Color tints the shadow and its alpha sets the strength. The zero value
	// means opaque black.
	Color color.NRGBA
}

// Cast renders the shadow of src's alpha channel. The result is premultiplied
// and has a zero origin; at is where that origin goes relative to the top
// left of src.
func (s Shadow) Cast(src image.Image) (img *image.RGBA, at image.Point) {
	b := src.Bounds()
	if b.Empty() {
		return nil, image.Point{}
	}
	tint := s.Color
	if tint == (color.NRGBA{}) {
		tint.A = 255
	}
	r := max(s.Blur, 0)
	w, h := b.Dx()+2*r, b.Dy()+2*r

	plane := make([]uint8, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y + r) * w
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			plane[row+x-b.Min.X+r] = uint8(a >> 8)
		}
	}
	boxBlur(plane, w, h, r)

	img = image.NewRGBA(image.Rect(0, 0, w, h))
	for i, a := range plane {
		if a == 0 {
			continue
		}
		k := uint32(a) * uint32(tint.A) / 255
		img.Pix[i*4+0] = uint8(uint32(tint.R) * k / 255)
		img.Pix[i*4+1] = uint8(uint32(tint.G) * k / 255)
		img.Pix[i*4+2] = uint8(uint32(tint.B) * k / 255)
		img.Pix[i*4+3] = uint8(k)
	}
	return img, s.Offset.Sub(image.Pt(r, r))
}

// boxBlur blurs a w x h plane in place with a 2r+1 box, rows first. Samples
// past the plane edge are left out of the average.
func boxBlur(plane []uint8, w, h, r int) {
	if r == 0 || w == 0 || h == 0 {
		return
	}
	n := max(w, h)
	prefix := make([]int, n+1)
	line := make([]uint8, n)
	for y := 0; y < h; y++ {
		blurLine(plane[y*w:], 1, w, r, prefix, line)
	}
	for x := 0; x < w; x++ {
		blurLine(plane[x:], w, h, r, prefix, line)
	}
}

func blurLine(p []uint8, stride, n, r int, prefix []int, line []uint8) {
	for i := range n {
		prefix[i+1] = prefix[i] + int(p[i*stride])
	}
	for i := range n {
		lo, hi := max(i-r, 0), min(i+r, n-1)
		line[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
	for i := range n {
		p[i*stride] = line[i]
	}
}
