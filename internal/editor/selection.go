package editor

import (
	"slices"

	"github.com/example/shineycanvas/internal/scene"
)

// selectionTracker mirrors the canvas selection from its events. The set is
// replaced wholesale on every event and never patched, so a slice handed out
// earlier stays valid.
type selectionTracker struct {
	set       []*scene.Object
	onCleared func()
	onChange  func()
	offs      []func()
}

// attach starts from whatever s already has active, so a rebind never
// reads an empty set while the canvas still holds a selection.
func (t *selectionTracker) attach(s Surface) {
	t.detach()
	t.set = slices.Clone(s.ActiveObjects())
	t.offs = []func(){
		s.On(scene.EventSelectionCreated, t.handle),
		s.On(scene.EventSelectionUpdated, t.handle),
		s.On(scene.EventSelectionCleared, t.handle),
	}
}

func (t *selectionTracker) detach() {
	for _, off := range t.offs {
		off()
	}
	t.offs = nil
}

func (t *selectionTracker) handle(ev scene.Event) {
	switch ev.Type {
	case scene.EventSelectionCreated, scene.EventSelectionUpdated:
		t.set = slices.Clone(ev.Selected)
		scene.Logger().Debug("selection changed", "event", ev.Type, "count", len(t.set))
		t.changed()
	case scene.EventSelectionCleared:
		t.set = nil
		scene.Logger().Debug("selection cleared")
		t.changed()
		if t.onCleared != nil {
			t.onCleared()
		}
	}
}

func (t *selectionTracker) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}

// selection returns the current set. Callers must not modify it.
func (t *selectionTracker) selection() []*scene.Object { return t.set }
