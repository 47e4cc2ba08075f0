package editor

import "github.com/example/shineycanvas/internal/scene"

// WorkspaceName marks the page rectangle among the canvas objects.
const WorkspaceName = "clip"

// workspace finds the page rectangle. It returns nil before Init or once
// the page has been removed.
func (e *Editor) workspace() *scene.Object {
	if e == nil || e.surface == nil {
		return nil
	}
	for _, o := range e.surface.Objects() {
		if o.Name == WorkspaceName {
			return o
		}
	}
	return nil
}

func newWorkspace(opts WorkspaceOptions) *scene.Object {
	ws := scene.NewRect(0, 0, opts.Width, opts.Height, 0, 0)
	ws.Name = WorkspaceName
	ws.Fill = opts.Fill
	ws.StrokeWidth = 0
	ws.Selectable = false
	ws.HasControls = false
	ws.Shadow = &scene.Shadow{Color: "rgba(0,0,0,0.8)", Blur: 5}
	return ws
}

// center moves o onto the workspace centre. Without a workspace o stays
// where it is.
func (e *Editor) center(o *scene.Object) {
	ws := e.workspace()
	if ws == nil {
		return
	}
	e.surface.CenterObjectAt(o, ws.CenterPoint())
}

// addToCanvas centres o on the page, inserts it and makes it the only
// selected object.
func (e *Editor) addToCanvas(o *scene.Object) {
	if e.surface == nil || o == nil {
		return
	}
	e.center(o)
	e.surface.Add(o)
	e.surface.SetActiveObject(o)
	scene.Logger().Debug("inserted", "id", o.ID, "kind", o.Kind)
}

// pinWorkspace keeps the page at the back of the paint order.
func (e *Editor) pinWorkspace() {
	if ws := e.workspace(); ws != nil {
		e.surface.SendToBack(ws)
	}
}
