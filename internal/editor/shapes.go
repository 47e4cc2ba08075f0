package editor

import (
	"fmt"

	"github.com/example/shineycanvas/internal/scene"
)

// ShapeKind names a shape the factory can build.
type ShapeKind string

const (
	ShapeCircle           ShapeKind = "circle"
	ShapeSquare           ShapeKind = "square"
	ShapeSquareFull       ShapeKind = "square-full"
	ShapeTriangle         ShapeKind = "triangle"
	ShapeInvertedTriangle ShapeKind = "inverted-triangle"
	ShapeDiamond          ShapeKind = "diamond"
)

// Base geometry shared by every new shape.
const (
	shapeLeft = 100
	shapeTop  = 100

	CircleRadius  = 225
	SquareSize    = 400
	SquareCorner  = 50
	TriangleSize  = 400
	DiamondWidth  = 600
	DiamondHeight = 600
)

var shapeBuilders = map[ShapeKind]func() *scene.Object{
	ShapeCircle: func() *scene.Object {
		return scene.NewCircle(shapeLeft, shapeTop, CircleRadius)
	},
	ShapeSquare: func() *scene.Object {
		return scene.NewRect(shapeLeft, shapeTop, SquareSize, SquareSize, SquareCorner, SquareCorner)
	},
	ShapeSquareFull: func() *scene.Object {
		return scene.NewRect(shapeLeft, shapeTop, SquareSize, SquareSize, 0, 0)
	},
	ShapeTriangle: func() *scene.Object {
		return scene.NewTriangle(shapeLeft, shapeTop, TriangleSize, TriangleSize)
	},
	ShapeInvertedTriangle: func() *scene.Object {
		const w, h = TriangleSize, TriangleSize
		return scene.NewPolygon(shapeLeft, shapeTop, []scene.Point{
			{X: 0, Y: 0},
			{X: w, Y: 0},
			{X: w / 2, Y: h},
		})
	},
	ShapeDiamond: func() *scene.Object {
		const w, h = DiamondWidth, DiamondHeight
		return scene.NewPolygon(shapeLeft, shapeTop, []scene.Point{
			{X: w / 2, Y: 0},
			{X: w, Y: h / 2},
			{X: w / 2, Y: h},
			{X: 0, Y: h / 2},
		})
	},
}

// ShapeKinds lists every kind NewShape accepts, in toolbar order.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{
		ShapeCircle,
		ShapeSquare,
		ShapeSquareFull,
		ShapeTriangle,
		ShapeInvertedTriangle,
		ShapeDiamond,
	}
}

// NewShape builds an uninserted shape of the given kind carrying attrs.
func NewShape(kind ShapeKind, attrs Attributes) (*scene.Object, error) {
	build, ok := shapeBuilders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", kind)
	}
	o := build()
	attrs.stamp(o)
	return o, nil
}

// newText builds an uninserted text object. Text has no stroke channel so
// only fill and opacity are taken from attrs.
func newText(value string, attrs Attributes) *scene.Object {
	o := scene.NewText(shapeLeft, shapeTop, value, scene.DefaultFontSize)
	o.Fill = attrs.FillColor
	o.StrokeWidth = 0
	o.Opacity = attrs.Opacity
	return o
}
