package scene

// EventType identifies a canvas event.
type EventType string

const (
	EventSelectionCreated EventType = "selection:created"
	EventSelectionUpdated EventType = "selection:updated"
	EventSelectionCleared EventType = "selection:cleared"
	EventObjectAdded      EventType = "object:added"
	EventObjectRemoved    EventType = "object:removed"
)

// Event is delivered to listeners. Selected and Deselected are snapshots the
// listener may keep.
type Event struct {
	Type       EventType
	Selected   []*Object
	Deselected []*Object
	Target     *Object
}

// Listener receives canvas events.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// On registers fn for events of type t. The returned function removes the
// registration; calling it more than once is harmless.
func (c *Canvas) On(t EventType, fn Listener) (off func()) {
	c.nextListener++
	id := c.nextListener
	c.listeners[t] = append(c.listeners[t], listenerEntry{id: id, fn: fn})
	return func() {
		entries := c.listeners[t]
		for i, e := range entries {
			if e.id == id {
				c.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every listener registered for ev.Type. Listeners added
// or removed during delivery take effect from the next Emit.
func (c *Canvas) Emit(ev Event) {
	entries := c.listeners[ev.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(ev)
	}
}
