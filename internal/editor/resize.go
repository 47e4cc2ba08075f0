package editor

import "github.com/example/shineycanvas/internal/scene"

// AutoResize fits the surface to the container and zooms so the page fills
// the configured share of it.
func (e *Editor) AutoResize() {
	if e.container == nil {
		return
	}
	w, h := e.container.Size()
	e.Resize(w, h)
}

// Resize sets the surface to width x height, zooms the page to fit and
// centres it in the viewport.
func (e *Editor) Resize(width, height int) {
	if e.surface == nil || width <= 0 || height <= 0 {
		return
	}
	e.surface.SetDimensions(width, height)
	ws := e.workspace()
	if ws == nil {
		e.surface.RenderAll()
		return
	}
	e.surface.SetViewport(fitViewport(ws.BoundingRect(), width, height, e.fitRatio))
	e.surface.SetClipPath(ws)
	e.surface.RenderAll()
	scene.Logger().Debug("resized", "width", width, "height", height)
}

// fitViewport scales r to fit ratio of a width x height surface and places
// its centre on the surface centre.
func fitViewport(r scene.Rect, width, height int, ratio float64) scene.Viewport {
	zoom := 1.0
	if r.Width > 0 && r.Height > 0 {
		zoom = min(float64(width)/r.Width, float64(height)/r.Height) * ratio
	}
	c := r.Center()
	return scene.Viewport{
		Zoom: zoom,
		X:    float64(width)/2 - c.X*zoom,
		Y:    float64(height)/2 - c.Y*zoom,
	}
}
