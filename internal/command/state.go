package command

import (
	"slices"

	"github.com/example/shineycanvas/internal/editor"
)

// Attributes is the JSON form of an attribute tuple.
type Attributes struct {
	Fill            string    `json:"fill"`
	Stroke          string    `json:"stroke"`
	StrokeWidth     float64   `json:"strokeWidth"`
	StrokeDashArray []float64 `json:"strokeDashArray"`
	Opacity         float64   `json:"opacity"`
}

// Object describes one canvas object in paint order.
type Object struct {
	Index           int       `json:"index"`
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name,omitempty"`
	Text            string    `json:"text,omitempty"`
	Left            float64   `json:"left"`
	Top             float64   `json:"top"`
	Width           float64   `json:"width"`
	Height          float64   `json:"height"`
	Fill            string    `json:"fill"`
	Stroke          string    `json:"stroke"`
	StrokeWidth     float64   `json:"strokeWidth"`
	StrokeDashArray []float64 `json:"strokeDashArray"`
	Opacity         float64   `json:"opacity"`
	Selected        bool      `json:"selected"`
}

// State is a point-in-time report of the session.
type State struct {
	Revision uint64     `json:"revision"`
	Defaults Attributes `json:"defaults"`
	Active   Attributes `json:"active"`
	Objects  []Object   `json:"objects"`
}

// State reports defaults, the values the toolbar would show and every
// object.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	h := s.ed.Handle()
	d := h.Defaults()
	st := State{
		Revision: s.ed.Revision(),
		Defaults: Attributes{
			Fill:            d.FillColor,
			Stroke:          d.StrokeColor,
			StrokeWidth:     d.StrokeWidth,
			StrokeDashArray: nonNil(d.StrokeDashArray),
			Opacity:         d.Opacity,
		},
		Active:  activeAttributes(h),
		Objects: []Object{},
	}
	active := s.canvas.ActiveObjects()
	for i, o := range s.canvas.Objects() {
		st.Objects = append(st.Objects, Object{
			Index:           i,
			ID:              o.ID,
			Kind:            string(o.Kind),
			Name:            o.Name,
			Text:            o.Text,
			Left:            o.Left,
			Top:             o.Top,
			Width:           o.Width,
			Height:          o.Height,
			Fill:            o.Fill,
			Stroke:          o.Stroke,
			StrokeWidth:     o.StrokeWidth,
			StrokeDashArray: nonNil(o.StrokeDashArray),
			Opacity:         o.Opacity,
			Selected:        slices.Contains(active, o),
		})
	}
	return st
}

// Toolbar reports the values a toolbar shows and the size of the selection.
func (s *Session) Toolbar() (Attributes, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.ed.Handle()
	return activeAttributes(h), len(h.Selection())
}

func activeAttributes(h *editor.Handle) Attributes {
	return Attributes{
		Fill:            h.GetActiveFillColor(),
		Stroke:          h.GetActiveStrokeColor(),
		StrokeWidth:     h.GetActiveStrokeWidth(),
		StrokeDashArray: h.GetActiveStrokeDashArray(),
		Opacity:         h.GetActiveOpacity(),
	}
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return slices.Clone(v)
}
