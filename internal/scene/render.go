package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/example/shineycanvas/internal/render"
)

// rotateHandleOffset is the distance between the top edge of a selection
// border and its rotation handle, in surface pixels.
const rotateHandleOffset = 40

// RenderAll repaints the whole surface synchronously, selection controls
// included. The result is available from Frame.
func (c *Canvas) RenderAll() {
	c.renders++
	if c.disposed || c.width == 0 || c.height == 0 {
		c.frame = nil
		return
	}
	img, err := c.rasterize(c.viewport, c.width, c.height, true)
	if err != nil {
		Logger().Warn("render", "err", err)
	}
	if img != nil {
		c.frame = img
	}
}

// Frame returns the image produced by the last RenderAll, or nil.
func (c *Canvas) Frame() *image.RGBA { return c.frame }

// Export paints the scene without selection controls at zoom 1, cropped to
// the bounding box of area. A nil area exports the full surface.
func (c *Canvas) Export(area *Object) (*image.RGBA, error) {
	if c.disposed {
		return nil, errors.New("canvas disposed")
	}
	if area == nil {
		if c.width == 0 || c.height == 0 {
			return nil, errors.New("canvas has no size")
		}
		return c.rasterize(IdentityViewport(), c.width, c.height, false)
	}
	r := area.BoundingRect()
	w, h := int(math.Ceil(r.Width)), int(math.Ceil(r.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("export area %s is empty", area.ID)
	}
	return c.rasterize(Viewport{Zoom: 1, X: -r.X, Y: -r.Y}, w, h, false)
}

// EncodePNG writes Export(area) to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer, area *Object) error {
	img, err := c.Export(area)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// rasterize paints in three passes: backdrop and page shadow, objects on a
// transparent layer copied through the clip box, then selection controls on
// top of the composite.
func (c *Canvas) rasterize(v Viewport, width, height int, controls bool) (*image.RGBA, error) {
	base := gg.NewContext(width, height)
	defer base.Close()
	bg, ok := paintColor(c.background)
	if !ok {
		bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	base.ClearWithColor(gg.FromColor(bg))
	if c.clipPath != nil && c.clipPath.Shadow != nil {
		c.drawShadow(base, v, c.clipPath)
	}
	out := toRGBA(base.Image())

	var errs []error
	layer := gg.NewContext(width, height)
	defer layer.Close()
	for _, o := range c.objects {
		if err := drawObject(layer, v, o); err != nil {
			errs = append(errs, fmt.Errorf("draw %s %s: %w", o.Kind, o.ID, err))
		}
	}
	area := out.Bounds()
	if c.clipPath != nil {
		area = pixelRect(screenRect(v, c.clipPath.BoundingRect())).Intersect(area)
	}
	draw.Draw(out, area, toRGBA(layer.Image()), area.Min, draw.Over)

	if !controls || len(c.active) == 0 {
		return out, errors.Join(errs...)
	}
	top := gg.NewContextForImage(out)
	defer top.Close()
	for _, o := range c.active {
		if err := drawControls(top, v, c.style, o); err != nil {
			errs = append(errs, fmt.Errorf("controls %s: %w", o.ID, err))
		}
	}
	return toRGBA(top.Image()), errors.Join(errs...)
}

// drawShadow paints the blurred silhouette of o beneath everything else. It
// sits outside the clip so the page edge casts onto the backdrop.
func (c *Canvas) drawShadow(dc *gg.Context, v Viewport, o *Object) {
	sh := o.Shadow
	col, ok := paintColor(sh.Color)
	if !ok || col.A == 0 {
		return
	}
	r := screenRect(v, o.BoundingRect())
	w, h := int(math.Round(r.Width)), int(math.Round(r.Height))
	if w <= 0 || h <= 0 {
		return
	}
	silhouette := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range silhouette.Pix {
		silhouette.Pix[i] = 0xff
	}
	shadow := render.Shadow{
		Blur:   int(math.Round(sh.Blur * v.Zoom)),
		Offset: image.Pt(int(math.Round(sh.OffsetX*v.Zoom)), int(math.Round(sh.OffsetY*v.Zoom))),
		Color:  col,
	}
	img, at := shadow.Cast(silhouette)
	if img == nil {
		return
	}
	dc.DrawImage(gg.ImageBufFromImage(img), math.Round(r.X)+float64(at.X), math.Round(r.Y)+float64(at.Y))
}

func drawObject(dc *gg.Context, v Viewport, o *Object) error {
	if o.Opacity <= 0 {
		return nil
	}
	if o.Opacity < 1 {
		dc.PushLayer(gg.BlendNormal, o.Opacity)
		defer dc.PopLayer()
	}
	if IsTextKind(o.Kind) {
		return drawText(dc, v, o)
	}
	if !tracePath(dc, v, o) {
		return nil
	}
	defer dc.ClearPath()
	if fill, ok := paintColor(o.Fill); ok && fill.A > 0 {
		dc.SetColor(fill)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	stroke, ok := paintColor(o.Stroke)
	if !ok || stroke.A == 0 || o.StrokeWidth <= 0 {
		return nil
	}
	dc.SetColor(stroke)
	dc.SetLineWidth(o.StrokeWidth * v.Zoom)
	if len(o.StrokeDashArray) > 0 {
		dash := make([]float64, len(o.StrokeDashArray))
		for i, d := range o.StrokeDashArray {
			dash[i] = d * v.Zoom
		}
		dc.SetDash(dash...)
		defer dc.ClearDash()
	}
	return dc.StrokePreserve()
}

// tracePath lays out the geometry of o in surface coordinates. The geometry
// box sits half a stroke inside the bounding box.
func tracePath(dc *gg.Context, v Viewport, o *Object) bool {
	inset := o.strokeExtent() / 2
	origin := Point{X: o.Left + inset, Y: o.Top + inset}
	z := v.Zoom
	at := func(p Point) Point {
		return v.ToScreen(Point{X: origin.X + p.X, Y: origin.Y + p.Y})
	}
	switch o.Kind {
	case KindRect:
		p := at(Point{})
		r := min(o.Rx, o.Ry)
		if r > 0 {
			dc.DrawRoundedRectangle(p.X, p.Y, o.Width*z, o.Height*z, r*z)
		} else {
			dc.DrawRectangle(p.X, p.Y, o.Width*z, o.Height*z)
		}
	case KindCircle:
		p := at(Point{X: o.Radius, Y: o.Radius})
		dc.DrawCircle(p.X, p.Y, o.Radius*z)
	case KindTriangle:
		tracePolygon(dc, []Point{
			at(Point{X: o.Width / 2}),
			at(Point{X: o.Width, Y: o.Height}),
			at(Point{Y: o.Height}),
		})
	case KindPolygon:
		if len(o.Points) < 3 {
			return false
		}
		pts := make([]Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = at(p)
		}
		tracePolygon(dc, pts)
	default:
		return false
	}
	return true
}

func tracePolygon(dc *gg.Context, pts []Point) {
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

func drawText(dc *gg.Context, v Viewport, o *Object) error {
	if o.Text == "" {
		return nil
	}
	fill, ok := paintColor(o.Fill)
	if !ok || fill.A == 0 {
		return nil
	}
	img, err := rasterText(o.Text, o.FontSize*v.Zoom, fill)
	if err != nil || img == nil {
		return err
	}
	p := v.ToScreen(Point{X: o.Left, Y: o.Top})
	dc.DrawImage(gg.ImageBufFromImage(img), math.Round(p.X), math.Round(p.Y))
	return nil
}

// drawControls paints the selection border and its nine handles.
func drawControls(dc *gg.Context, v Viewport, s ControlStyle, o *Object) error {
	r := screenRect(v, o.BoundingRect())
	var errs []error
	if border, ok := paintColor(s.BorderColor); ok {
		dc.SetColor(border)
		dc.SetLineWidth(max(s.BorderScaleFactor, 0.5))
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		if o.HasControls {
			top := Point{X: r.X + r.Width/2, Y: r.Y}
			dc.MoveTo(top.X, top.Y)
			dc.LineTo(top.X, top.Y-rotateHandleOffset)
		}
		errs = append(errs, dc.Stroke())
	}
	if !o.HasControls {
		return errors.Join(errs...)
	}
	fill, fillOK := paintColor(s.CornerColor)
	edge, edgeOK := paintColor(s.CornerStrokeColor)
	if s.TransparentCorners {
		edge, edgeOK = fill, fillOK
		fillOK = false
	}
	size := s.CornerSize
	if size <= 0 {
		size = DefaultControlStyle().CornerSize
	}
	for _, p := range handlePoints(r) {
		if s.CornerStyle == CornerCircle {
			dc.DrawCircle(p.X, p.Y, size/2)
		} else {
			dc.DrawRectangle(p.X-size/2, p.Y-size/2, size, size)
		}
		if fillOK {
			dc.SetColor(fill)
			errs = append(errs, dc.FillPreserve())
		}
		if edgeOK {
			dc.SetColor(edge)
			dc.SetLineWidth(1)
			errs = append(errs, dc.StrokePreserve())
		}
		dc.ClearPath()
	}
	return errors.Join(errs...)
}

// handlePoints returns the corner, edge midpoint and rotation handle centres
// of r.
func handlePoints(r Rect) []Point {
	l, t := r.X, r.Y
	rt, b := r.X+r.Width, r.Y+r.Height
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	return []Point{
		{l, t}, {cx, t}, {rt, t},
		{l, cy}, {rt, cy},
		{l, b}, {cx, b}, {rt, b},
		{cx, t - rotateHandleOffset},
	}
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

func screenRect(v Viewport, r Rect) Rect {
	p := v.ToScreen(Point{X: r.X, Y: r.Y})
	return Rect{X: p.X, Y: p.Y, Width: r.Width * v.Zoom, Height: r.Height * v.Zoom}
}

// paintColor parses a paint string. Empty or unparseable paints report
// false and are not drawn.
func paintColor(s string) (color.NRGBA, bool) {
	if s == "" {
		return color.NRGBA{}, false
	}
	c, err := ParseColor(s)
	if err != nil {
		Logger().Debug("skip paint", "color", s, "err", err)
		return color.NRGBA{}, false
	}
	return c, true
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
