package editor

import (
	"slices"

	"github.com/example/shineycanvas/internal/scene"
)

// Handle is an immutable view of an editing session taken at one revision.
// Reads answer from the defaults and selection captured when the handle was
// built; writes go to the live session while it is still bound to the same
// canvas. Fetch a fresh handle from
// Editor.Handle after any change, or check Stale.
//
// Every method is safe on a nil *Handle: writes do nothing and reads return
// the stock defaults.
type Handle struct {
	ed        *Editor
	revision  uint64
	surface   Surface
	defaults  Attributes
	selection []*scene.Object
}

// Stale reports whether the session has changed since h was built.
func (h *Handle) Stale() bool {
	if h == nil {
		return false
	}
	return h.ed.surface != h.surface || h.ed.revision != h.revision
}

// live returns the editor only while it is still bound to the canvas h
// was built over.
func (h *Handle) live() *Editor {
	if h == nil || h.ed.surface == nil || h.ed.surface != h.surface {
		return nil
	}
	return h.ed
}

// Surface returns the canvas the handle was built over.
func (h *Handle) Surface() Surface {
	if h == nil {
		return nil
	}
	return h.surface
}

// Workspace returns the page rectangle, read fresh from the canvas.
func (h *Handle) Workspace() *scene.Object {
	if h == nil {
		return nil
	}
	return h.ed.workspace()
}

// Selection returns the selected objects captured by h, primary first.
func (h *Handle) Selection() []*scene.Object {
	if h == nil {
		return nil
	}
	return slices.Clone(h.selection)
}

// Defaults returns the attribute defaults captured by h.
func (h *Handle) Defaults() Attributes {
	if h == nil {
		return DefaultAttributes()
	}
	return h.defaults.Clone()
}

func (h *Handle) add(kind ShapeKind) *scene.Object {
	e := h.live()
	if e == nil {
		return nil
	}
	o, err := NewShape(kind, e.defaults)
	if err != nil {
		scene.Logger().Error("build shape", "err", err)
		return nil
	}
	e.addToCanvas(o)
	return o
}

// AddShape inserts a new shape of kind, centred on the page and selected.
func (h *Handle) AddShape(kind ShapeKind) *scene.Object { return h.add(kind) }

// AddCircle inserts a circle.
func (h *Handle) AddCircle() *scene.Object { return h.add(ShapeCircle) }

// AddSquare inserts a square with rounded corners.
func (h *Handle) AddSquare() *scene.Object { return h.add(ShapeSquare) }

// AddSquareFull inserts a square with sharp corners.
func (h *Handle) AddSquareFull() *scene.Object { return h.add(ShapeSquareFull) }

// AddTriangle inserts a triangle pointing up.
func (h *Handle) AddTriangle() *scene.Object { return h.add(ShapeTriangle) }

// AddInvertedTriangle inserts a triangle pointing down.
func (h *Handle) AddInvertedTriangle() *scene.Object { return h.add(ShapeInvertedTriangle) }

// AddDiamond inserts a diamond.
func (h *Handle) AddDiamond() *scene.Object { return h.add(ShapeDiamond) }

// AddText inserts a text object painted with the fill default.
func (h *Handle) AddText(value string) *scene.Object {
	e := h.live()
	if e == nil {
		return nil
	}
	o := newText(value, e.defaults)
	e.addToCanvas(o)
	return o
}

// ChangeFillColor sets the fill default and the fill of every selected
// object.
func (h *Handle) ChangeFillColor(value string) {
	if e := h.live(); e != nil {
		e.change(
			func(a *Attributes) { a.FillColor = value },
			func(o *scene.Object) { o.Fill = value },
		)
	}
}

// ChangeStrokeColor sets the stroke default and the stroke of every
// selected object. Text has no stroke, so text objects take the colour as
// their fill.
func (h *Handle) ChangeStrokeColor(value string) {
	if e := h.live(); e != nil {
		e.change(
			func(a *Attributes) { a.StrokeColor = value },
			func(o *scene.Object) {
				if scene.IsTextKind(o.Kind) {
					o.Fill = value
					return
				}
				o.Stroke = value
			},
		)
	}
}

// ChangeStrokeWidth sets the stroke width default and applies it to the
// selection. Negative widths are stored as given.
func (h *Handle) ChangeStrokeWidth(value float64) {
	if e := h.live(); e != nil {
		e.change(
			func(a *Attributes) { a.StrokeWidth = value },
			func(o *scene.Object) { o.StrokeWidth = value },
		)
	}
}

// ChangeStrokeDashArray sets the dash pattern default and applies it to the
// selection. An empty pattern means a solid stroke.
func (h *Handle) ChangeStrokeDashArray(value []float64) {
	if e := h.live(); e != nil {
		e.change(
			func(a *Attributes) { a.StrokeDashArray = slices.Clone(value) },
			func(o *scene.Object) { o.SetStrokeDashArray(value) },
		)
	}
}

// ChangeOpacity sets the opacity default and applies it to the selection.
func (h *Handle) ChangeOpacity(value float64) {
	if e := h.live(); e != nil {
		e.change(
			func(a *Attributes) { a.Opacity = value },
			func(o *scene.Object) { o.Opacity = value },
		)
	}
}

func (h *Handle) primary() *scene.Object {
	if h == nil || len(h.selection) == 0 {
		return nil
	}
	return h.selection[0]
}

// GetActiveFillColor returns the fill of the primary selected object, or the
// default when nothing is selected or the object has no fill.
func (h *Handle) GetActiveFillColor() string {
	d := h.Defaults()
	if o := h.primary(); o != nil && o.Fill != "" {
		return o.Fill
	}
	return d.FillColor
}

// GetActiveStrokeColor returns the stroke of the primary selected object.
// For text the fill is reported since that is where stroke changes land.
func (h *Handle) GetActiveStrokeColor() string {
	d := h.Defaults()
	o := h.primary()
	if o == nil {
		return d.StrokeColor
	}
	v := o.Stroke
	if scene.IsTextKind(o.Kind) {
		v = o.Fill
	}
	if v == "" {
		return d.StrokeColor
	}
	return v
}

// GetActiveStrokeWidth returns the stroke width of the primary selected
// object. A zero width reads as the default.
func (h *Handle) GetActiveStrokeWidth() float64 {
	d := h.Defaults()
	if o := h.primary(); o != nil && o.StrokeWidth != 0 {
		return o.StrokeWidth
	}
	return d.StrokeWidth
}

// GetActiveStrokeDashArray returns the dash pattern of the primary selected
// object. A selected object without a pattern reads as an empty slice, not
// as the default, because no dash is a meaningful value.
func (h *Handle) GetActiveStrokeDashArray() []float64 {
	d := h.Defaults()
	o := h.primary()
	if o == nil {
		if d.StrokeDashArray == nil {
			return []float64{}
		}
		return d.StrokeDashArray
	}
	if len(o.StrokeDashArray) == 0 {
		return []float64{}
	}
	return slices.Clone(o.StrokeDashArray)
}

// GetActiveOpacity returns the opacity of the primary selected object. A
// zero opacity reads as the default.
func (h *Handle) GetActiveOpacity() float64 {
	d := h.Defaults()
	if o := h.primary(); o != nil && o.Opacity != 0 {
		return o.Opacity
	}
	return d.Opacity
}

// SendForwards moves every selected object one step toward the front, one at
// a time in selection order, then returns the page to the back.
func (h *Handle) SendForwards() {
	e := h.live()
	if e == nil {
		return
	}
	for _, o := range e.surface.ActiveObjects() {
		e.surface.BringForward(o)
	}
	e.pinWorkspace()
	e.surface.RenderAll()
}

// SendToBack moves every selected object one step toward the back, then
// returns the page to the back.
func (h *Handle) SendToBack() {
	e := h.live()
	if e == nil {
		return
	}
	for _, o := range e.surface.ActiveObjects() {
		e.surface.SendBackwards(o)
	}
	e.pinWorkspace()
	e.surface.RenderAll()
}
