package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is used for text objects created without a size.
const DefaultFontSize = 32

var (
	fontOnce  sync.Once
	textFont  *opentype.Font
	fontErr   error
	textFaces sync.Map // map[float64]font.Face
)

func loadFont() {
	textFont, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		Logger().Error("parse font", "err", fontErr)
	}
}

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	size = math.Round(size*4) / 4
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	fontOnce.Do(loadFont)
	if fontErr != nil {
		return nil, fontErr
	}
	face, err := opentype.NewFace(textFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	textFaces.Store(size, face)
	return face, nil
}

// measureText returns the box of text set at size. Sizes fall back to a
// rough per-glyph estimate if the face cannot be built.
func measureText(text string, size float64) (width, height float64) {
	face, err := faceForSize(size)
	if err != nil {
		return float64(len(text)) * size * 0.6, size * 1.16
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return float64(d.MeasureString(text).Ceil()), float64(m.Ascent.Ceil() + m.Descent.Ceil())
}

// rasterText renders text at size into a transparent image just large enough
// to hold it.
func rasterText(text string, size float64, col color.Color) (*image.RGBA, error) {
	face, err := faceForSize(size)
	if err != nil {
		return nil, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	w := d.MeasureString(text).Ceil()
	h := m.Ascent.Ceil() + m.Descent.Ceil()
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	d.Dst = img
	d.Src = image.NewUniform(col)
	d.Dot = fixed.P(0, m.Ascent.Ceil())
	d.DrawString(text)
	return img, nil
}
