package scene

// CornerStyle selects how selection handles are drawn.
type CornerStyle string

const (
	CornerRect   CornerStyle = "rect"
	CornerCircle CornerStyle = "circle"
)

// ControlStyle is the appearance of selection borders and handles. Each
// Canvas carries its own copy; nothing is shared between canvases.
type ControlStyle struct {
	CornerColor             string
	CornerStrokeColor       string
	CornerStyle             CornerStyle
	CornerSize              float64
	BorderColor             string
	BorderScaleFactor       float64
	TransparentCorners      bool
	BorderOpacityWhenMoving float64
}

// DefaultControlStyle returns the engine's stock handle appearance.
func DefaultControlStyle() ControlStyle {
	return ControlStyle{
		CornerColor:             "rgb(178,204,255)",
		CornerStyle:             CornerRect,
		CornerSize:              13,
		BorderColor:             "rgb(178,204,255)",
		BorderScaleFactor:       1,
		TransparentCorners:      true,
		BorderOpacityWhenMoving: 0.4,
	}
}
