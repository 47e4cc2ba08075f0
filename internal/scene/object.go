package scene

import (
	"slices"

	"github.com/google/uuid"
)

// Kind tags the geometry an Object carries.
type Kind string

const (
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
	KindTriangle Kind = "triangle"
	KindPolygon  Kind = "polygon"
	KindText     Kind = "text"
	KindIText    Kind = "i-text"
	KindTextbox  Kind = "textbox"
)

// IsTextKind reports whether k renders glyphs. Text kinds have no
// independent stroke channel.
func IsTextKind(k Kind) bool {
	switch k {
	case KindText, KindIText, KindTextbox:
		return true
	}
	return false
}

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in scene coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Shadow describes a drop shadow painted beneath an object.
type Shadow struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Object is a drawable node of the render tree. Left and Top locate the
// top-left corner of the bounding box, which includes half the stroke on
// every side.
type Object struct {
	ID   string
	Name string
	Kind Kind

	Left, Top     float64
	Width, Height float64

	// Radius is used by circles, Rx/Ry by rounded rects.
	Radius float64
	Rx, Ry float64
	// Points holds polygon vertices. They are translated so their minimum
	// corner sits at the object's origin.
	Points []Point

	Text     string
	FontSize float64

	Fill            string
	Stroke          string
	StrokeWidth     float64
	StrokeDashArray []float64
	Opacity         float64

	Selectable  bool
	HasControls bool
	Shadow      *Shadow
}

func newObject(kind Kind) *Object {
	return &Object{
		ID:          uuid.NewString(),
		Kind:        kind,
		Fill:        "rgb(0,0,0)",
		StrokeWidth: 1,
		Opacity:     1,
		Selectable:  true,
		HasControls: true,
	}
}

// NewRect creates a rectangle with optional corner radii.
func NewRect(left, top, width, height, rx, ry float64) *Object {
	o := newObject(KindRect)
	o.Left, o.Top = left, top
	o.Width, o.Height = width, height
	o.Rx, o.Ry = rx, ry
	return o
}

// NewCircle creates a circle whose bounding box starts at left, top.
func NewCircle(left, top, radius float64) *Object {
	o := newObject(KindCircle)
	o.Left, o.Top = left, top
	o.Radius = radius
	o.Width, o.Height = radius*2, radius*2
	return o
}

// NewTriangle creates an isosceles triangle with its apex at the top centre.
func NewTriangle(left, top, width, height float64) *Object {
	o := newObject(KindTriangle)
	o.Left, o.Top = left, top
	o.Width, o.Height = width, height
	return o
}

// NewPolygon creates a closed polygon. Width and height follow the extent of
// points.
func NewPolygon(left, top float64, points []Point) *Object {
	o := newObject(KindPolygon)
	o.Left, o.Top = left, top
	if len(points) == 0 {
		return o
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	o.Points = make([]Point, len(points))
	for i, p := range points {
		o.Points[i] = Point{X: p.X - minX, Y: p.Y - minY}
	}
	o.Width, o.Height = maxX-minX, maxY-minY
	return o
}

// NewText creates a single-line text object sized to its content.
func NewText(left, top float64, text string, fontSize float64) *Object {
	o := newObject(KindText)
	o.Left, o.Top = left, top
	o.Text = text
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	o.FontSize = fontSize
	o.Width, o.Height = measureText(text, fontSize)
	return o
}

// BoundingRect returns the object's box including its stroke.
func (o *Object) BoundingRect() Rect {
	sw := o.strokeExtent()
	return Rect{X: o.Left, Y: o.Top, Width: o.Width + sw, Height: o.Height + sw}
}

// CenterPoint returns the centre of the bounding box.
func (o *Object) CenterPoint() Point {
	return o.BoundingRect().Center()
}

// SetCenterPoint moves the object so its centre lands on p.
func (o *Object) SetCenterPoint(p Point) {
	r := o.BoundingRect()
	o.Left = p.X - r.Width/2
	o.Top = p.Y - r.Height/2
}

// SetStrokeDashArray stores a private copy of dash. A nil or empty pattern
// means a solid stroke.
func (o *Object) SetStrokeDashArray(dash []float64) {
	if len(dash) == 0 {
		o.StrokeDashArray = nil
		return
	}
	o.StrokeDashArray = slices.Clone(dash)
}

// SetText replaces the text content and resizes the box to fit.
func (o *Object) SetText(text string) {
	o.Text = text
	o.Width, o.Height = measureText(text, o.FontSize)
}

// strokeExtent is the width the stroke adds to the box. Text never strokes.
func (o *Object) strokeExtent() float64 {
	if IsTextKind(o.Kind) || o.StrokeWidth <= 0 {
		return 0
	}
	return o.StrokeWidth
}
