package editor

import (
	"slices"

	"github.com/example/shineycanvas/internal/scene"
)

// Stock attribute values used until a Change* call or configuration says
// otherwise.
const (
	DefaultFillColor   = "rgba(0,0,0,1)"
	DefaultStrokeColor = "rgba(0,0,0,1)"
	DefaultStrokeWidth = 2
	DefaultOpacity     = 1
)

// Attributes are the values stamped onto the next new object. They double as
// the answer to GetActive* reads while nothing is selected.
type Attributes struct {
	FillColor       string
	StrokeColor     string
	StrokeWidth     float64
	StrokeDashArray []float64
	Opacity         float64
}

// DefaultAttributes returns the stock attribute set. The dash pattern is
// empty, meaning a solid stroke.
func DefaultAttributes() Attributes {
	return Attributes{
		FillColor:   DefaultFillColor,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: DefaultStrokeWidth,
		Opacity:     DefaultOpacity,
	}
}

// Clone returns a copy that shares no memory with a.
func (a Attributes) Clone() Attributes {
	a.StrokeDashArray = slices.Clone(a.StrokeDashArray)
	return a
}

// stamp copies every attribute onto o.
func (a Attributes) stamp(o *scene.Object) {
	o.Fill = a.FillColor
	o.Stroke = a.StrokeColor
	o.StrokeWidth = a.StrokeWidth
	o.SetStrokeDashArray(a.StrokeDashArray)
	o.Opacity = a.Opacity
}

// DefaultControlStyle is the selection handle look applied to the canvas at
// Init: white round corners outlined in blue.
func DefaultControlStyle() scene.ControlStyle {
	return scene.ControlStyle{
		CornerColor:             "#FFF",
		CornerStrokeColor:       "#3b82f6",
		CornerStyle:             scene.CornerCircle,
		CornerSize:              13,
		BorderColor:             "#3b82f6",
		BorderScaleFactor:       1.5,
		TransparentCorners:      false,
		BorderOpacityWhenMoving: 1,
	}
}

// WorkspaceOptions describes the page rectangle created at Init.
type WorkspaceOptions struct {
	Width, Height float64
	Fill          string
}

// DefaultWorkspaceOptions returns a 900x1200 white page.
func DefaultWorkspaceOptions() WorkspaceOptions {
	return WorkspaceOptions{Width: 900, Height: 1200, Fill: "white"}
}
