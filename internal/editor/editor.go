// Package editor is the state facade of the design editor. It sits between a
// retained-mode canvas and the attribute defaults the toolbar edits, keeps
// those defaults consistent with the current selection and applies every
// change uniformly across multi-object selections.
//
// An Editor is not safe for concurrent use. Hosts that serve several
// goroutines must serialise calls themselves.
package editor

import (
	"github.com/example/shineycanvas/internal/scene"
)

// Surface is the part of the canvas the editor drives. *scene.Canvas
// implements it.
type Surface interface {
	Objects() []*scene.Object
	Add(objs ...*scene.Object)
	ActiveObjects() []*scene.Object
	SetActiveObject(o *scene.Object)
	CenterObject(o *scene.Object)
	CenterObjectAt(o *scene.Object, p scene.Point)
	BringForward(o *scene.Object)
	SendBackwards(o *scene.Object)
	SendToBack(o *scene.Object)
	SetDimensions(width, height int)
	SetViewport(v scene.Viewport)
	SetClipPath(o *scene.Object)
	SetControlStyle(s scene.ControlStyle)
	RenderAll()
	On(t scene.EventType, fn scene.Listener) (off func())
}

// Container reports the pixel size of whatever hosts the surface.
type Container interface {
	Size() (width, height int)
}

// FixedContainer is a Container of constant size, for headless hosts.
type FixedContainer struct {
	Width, Height int
}

// Size implements Container.
func (c FixedContainer) Size() (int, int) { return c.Width, c.Height }

var _ Surface = (*scene.Canvas)(nil)

// Editor owns one editing session: the attribute defaults, the tracked
// selection and a non-owning reference to the canvas.
type Editor struct {
	style         scene.ControlStyle
	defaults      Attributes
	workspaceOpts WorkspaceOptions
	fitRatio      float64

	surface   Surface
	container Container
	tracker   selectionTracker

	revision uint64
	handle   *Handle
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithControlStyle sets the selection handle look applied at Init.
func WithControlStyle(s scene.ControlStyle) Option { return func(e *Editor) { e.style = s } }

// WithDefaults seeds the attribute defaults.
func WithDefaults(a Attributes) Option { return func(e *Editor) { e.defaults = a.Clone() } }

// WithWorkspace sets the size and colour of the page created at Init.
func WithWorkspace(w WorkspaceOptions) Option { return func(e *Editor) { e.workspaceOpts = w } }

// WithFitRatio sets how much of the container the page fills after a
// resize. Values outside (0, 1] are ignored.
func WithFitRatio(r float64) Option {
	return func(e *Editor) {
		if r > 0 && r <= 1 {
			e.fitRatio = r
		}
	}
}

// WithSelectionCleared registers fn to run once for every selection-cleared
// event the canvas delivers.
func WithSelectionCleared(fn func()) Option {
	return func(e *Editor) { e.tracker.onCleared = fn }
}

// New creates an Editor with the provided options. It has no canvas until
// Init is called.
func New(opts ...Option) *Editor {
	e := &Editor{
		style:         DefaultControlStyle(),
		defaults:      DefaultAttributes(),
		workspaceOpts: DefaultWorkspaceOptions(),
		fitRatio:      0.85,
	}
	for _, o := range opts {
		o(e)
	}
	e.tracker.onChange = e.touch
	return e
}

// Init binds the editor to surface and container: it applies the control
// style, sizes the surface to the container, creates the centred page and
// clips painting to it, then starts tracking the selection. Calling Init
// again rebinds the editor; a page already on the surface is reused.
func (e *Editor) Init(surface Surface, container Container) {
	if surface == nil || container == nil {
		return
	}
	e.tracker.detach()

	surface.SetControlStyle(e.style)
	w, h := container.Size()
	surface.SetDimensions(w, h)

	e.surface = surface
	e.container = container
	ws := e.workspace()
	if ws == nil {
		ws = newWorkspace(e.workspaceOpts)
		surface.Add(ws)
		surface.CenterObject(ws)
	}
	surface.SendToBack(ws)
	surface.SetClipPath(ws)

	e.tracker.attach(surface)
	e.touch()
	scene.Logger().Debug("editor initialised", "width", w, "height", h, "workspace", ws.ID)
}

// Dispose stops tracking the selection and drops the canvas reference. The
// canvas itself belongs to the host.
func (e *Editor) Dispose() {
	e.tracker.detach()
	e.tracker.set = nil
	e.surface = nil
	e.container = nil
	e.touch()
}

// Handle returns the current view of the session, or nil before Init. The
// same pointer is returned until the canvas, the defaults or the selection
// change.
func (e *Editor) Handle() *Handle {
	if e.surface == nil {
		return nil
	}
	if e.handle == nil || e.handle.revision != e.revision {
		e.handle = &Handle{
			ed:        e,
			revision:  e.revision,
			surface:   e.surface,
			defaults:  e.defaults.Clone(),
			selection: e.tracker.selection(),
		}
	}
	return e.handle
}

// Defaults returns a copy of the attribute defaults.
func (e *Editor) Defaults() Attributes { return e.defaults.Clone() }

// Revision increases every time the canvas, the defaults or the selection
// change.
func (e *Editor) Revision() uint64 { return e.revision }

func (e *Editor) touch() {
	e.revision++
}

// change writes the default, applies it to every active object and repaints
// once, in that order.
func (e *Editor) change(setDefault func(*Attributes), apply func(*scene.Object)) {
	if e.surface == nil {
		return
	}
	setDefault(&e.defaults)
	e.touch()
	for _, o := range e.surface.ActiveObjects() {
		apply(o)
	}
	e.surface.RenderAll()
}
