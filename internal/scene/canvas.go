package scene

import (
	"image"
	"slices"
)

// Viewport maps scene coordinates onto the canvas surface:
// screen = scene*Zoom + (X, Y).
type Viewport struct {
	Zoom float64
	X, Y float64
}

// IdentityViewport leaves scene coordinates untouched.
func IdentityViewport() Viewport { return Viewport{Zoom: 1} }

// ToScreen maps a scene point onto the surface.
func (v Viewport) ToScreen(p Point) Point {
	return Point{X: p.X*v.Zoom + v.X, Y: p.Y*v.Zoom + v.Y}
}

// ToScene maps a surface point back into scene coordinates.
func (v Viewport) ToScene(p Point) Point {
	z := v.Zoom
	if z == 0 {
		z = 1
	}
	return Point{X: (p.X - v.X) / z, Y: (p.Y - v.Y) / z}
}

// Canvas is a retained-mode render tree bound to a fixed-size surface. Object
// order is paint order: index 0 is painted first and sits at the back.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width, height int
	background    string

	objects  []*Object
	active   []*Object
	clipPath *Object
	style    ControlStyle
	viewport Viewport

	listeners    map[EventType][]listenerEntry
	nextListener int

	renders  int
	frame    *image.RGBA
	disposed bool
}

// Option configures a Canvas at construction.
type Option func(*Canvas)

// WithControlStyle sets the selection handle appearance.
func WithControlStyle(s ControlStyle) Option { return func(c *Canvas) { c.style = s } }

// WithBackground sets the colour painted behind every object.
func WithBackground(col string) Option { return func(c *Canvas) { c.background = col } }

// NewCanvas creates an empty canvas of the given pixel size.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		width:      max(width, 0),
		height:     max(height, 0),
		background: "#F1F5F9",
		style:      DefaultControlStyle(),
		viewport:   IdentityViewport(),
		listeners:  make(map[EventType][]listenerEntry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.height }

// SetDimensions resizes the surface. Objects keep their scene positions.
func (c *Canvas) SetDimensions(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
}

// Center returns the middle of the surface in scene coordinates, ignoring
// the viewport.
func (c *Canvas) Center() Point {
	return Point{X: float64(c.width) / 2, Y: float64(c.height) / 2}
}

// ControlStyle returns the selection handle appearance.
func (c *Canvas) ControlStyle() ControlStyle { return c.style }

// SetControlStyle replaces the selection handle appearance for this canvas.
func (c *Canvas) SetControlStyle(s ControlStyle) { c.style = s }

// Viewport returns the current viewport transform.
func (c *Canvas) Viewport() Viewport { return c.viewport }

// SetViewport replaces the viewport transform. A zero zoom is treated as 1.
func (c *Canvas) SetViewport(v Viewport) {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	c.viewport = v
}

// ClipPath returns the object that bounds what is painted, or nil.
func (c *Canvas) ClipPath() *Object { return c.clipPath }

// SetClipPath restricts painting to the bounding box of o. Nil removes the
// restriction.
func (c *Canvas) SetClipPath(o *Object) { c.clipPath = o }

// Objects returns the render tree in paint order. The slice is a copy.
func (c *Canvas) Objects() []*Object {
	return slices.Clone(c.objects)
}

// Contains reports whether o is in the render tree.
func (c *Canvas) Contains(o *Object) bool {
	return c.indexOf(o) >= 0
}

// IndexOf returns the paint position of o, or -1.
func (c *Canvas) IndexOf(o *Object) int {
	return c.indexOf(o)
}

func (c *Canvas) indexOf(o *Object) int {
	for i, obj := range c.objects {
		if obj == o {
			return i
		}
	}
	return -1
}

// Add appends objects to the front of the paint order. Objects already
// present are ignored.
func (c *Canvas) Add(objs ...*Object) {
	for _, o := range objs {
		if o == nil || c.Contains(o) {
			continue
		}
		c.objects = append(c.objects, o)
		Logger().Debug("object added", "id", o.ID, "kind", o.Kind, "name", o.Name)
		c.Emit(Event{Type: EventObjectAdded, Target: o})
	}
}

// Remove deletes objects from the render tree and from the active selection.
func (c *Canvas) Remove(objs ...*Object) {
	var removed []*Object
	for _, o := range objs {
		i := c.indexOf(o)
		if i < 0 {
			continue
		}
		c.objects = slices.Delete(c.objects, i, i+1)
		if c.clipPath == o {
			c.clipPath = nil
		}
		removed = append(removed, o)
	}
	if len(removed) == 0 {
		return
	}
	remaining := slices.DeleteFunc(slices.Clone(c.active), func(o *Object) bool {
		return slices.Contains(removed, o)
	})
	if len(remaining) != len(c.active) {
		c.SetActiveObjects(remaining)
	}
	for _, o := range removed {
		c.Emit(Event{Type: EventObjectRemoved, Target: o})
	}
}

// ActiveObjects returns the current selection in selection order.
func (c *Canvas) ActiveObjects() []*Object {
	return slices.Clone(c.active)
}

// ActiveObject returns the first selected object, or nil.
func (c *Canvas) ActiveObject() *Object {
	if len(c.active) == 0 {
		return nil
	}
	return c.active[0]
}

// SetActiveObject makes o the only selected object.
func (c *Canvas) SetActiveObject(o *Object) {
	if o == nil {
		c.DiscardActiveObject()
		return
	}
	c.SetActiveObjects([]*Object{o})
}

// SetActiveObjects replaces the selection. Objects that are not in the
// render tree or are not selectable are dropped. Fires selection:created when
// the previous selection was empty, selection:updated when it changes, and
// selection:cleared when the new selection is empty.
func (c *Canvas) SetActiveObjects(objs []*Object) {
	next := make([]*Object, 0, len(objs))
	for _, o := range objs {
		if o == nil || !o.Selectable || !c.Contains(o) || slices.Contains(next, o) {
			continue
		}
		next = append(next, o)
	}
	if len(next) == 0 {
		c.DiscardActiveObject()
		return
	}
	prev := c.active
	if slices.Equal(prev, next) {
		return
	}
	c.active = next
	if len(prev) == 0 {
		c.Emit(Event{Type: EventSelectionCreated, Selected: slices.Clone(next)})
		return
	}
	deselected := slices.DeleteFunc(slices.Clone(prev), func(o *Object) bool {
		return slices.Contains(next, o)
	})
	c.Emit(Event{Type: EventSelectionUpdated, Selected: slices.Clone(next), Deselected: deselected})
}

// DiscardActiveObject empties the selection, firing selection:cleared if
// anything was selected.
func (c *Canvas) DiscardActiveObject() {
	if len(c.active) == 0 {
		return
	}
	prev := c.active
	c.active = nil
	c.Emit(Event{Type: EventSelectionCleared, Deselected: prev})
}

// BringForward moves o one step toward the front.
func (c *Canvas) BringForward(o *Object) {
	i := c.indexOf(o)
	if i < 0 || i == len(c.objects)-1 {
		return
	}
	c.objects[i], c.objects[i+1] = c.objects[i+1], c.objects[i]
}

// SendBackwards moves o one step toward the back.
func (c *Canvas) SendBackwards(o *Object) {
	i := c.indexOf(o)
	if i <= 0 {
		return
	}
	c.objects[i], c.objects[i-1] = c.objects[i-1], c.objects[i]
}

// SendToBack moves o to the back of the paint order.
func (c *Canvas) SendToBack(o *Object) {
	i := c.indexOf(o)
	if i <= 0 {
		return
	}
	c.objects = slices.Delete(c.objects, i, i+1)
	c.objects = slices.Insert(c.objects, 0, o)
}

// BringToFront moves o to the front of the paint order.
func (c *Canvas) BringToFront(o *Object) {
	i := c.indexOf(o)
	if i < 0 || i == len(c.objects)-1 {
		return
	}
	c.objects = slices.Delete(c.objects, i, i+1)
	c.objects = append(c.objects, o)
}

// CenterObject centres o on the surface.
func (c *Canvas) CenterObject(o *Object) {
	c.CenterObjectAt(o, c.Center())
}

// CenterObjectAt moves o so its centre is p.
func (c *Canvas) CenterObjectAt(o *Object, p Point) {
	if o == nil {
		return
	}
	o.SetCenterPoint(p)
}

// FindTarget returns the front-most selectable object under the surface
// point p, or nil.
func (c *Canvas) FindTarget(p Point) *Object {
	sp := c.viewport.ToScene(p)
	for i := len(c.objects) - 1; i >= 0; i-- {
		o := c.objects[i]
		if !o.Selectable {
			continue
		}
		if o.BoundingRect().Contains(sp) {
			return o
		}
	}
	return nil
}

// RenderCount reports how many times RenderAll has run.
func (c *Canvas) RenderCount() int { return c.renders }

// Dispose drops every object and listener. The canvas must not be used
// afterwards.
func (c *Canvas) Dispose() {
	c.objects = nil
	c.active = nil
	c.clipPath = nil
	c.listeners = make(map[EventType][]listenerEntry)
	c.frame = nil
	c.disposed = true
}
