// Package appstate hosts the editor in a desktop window: a toolbar of shape,
// colour and stroke controls beside a live view of the canvas.
package appstate

import (
	"image"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/display"
	"github.com/example/shineycanvas/internal/theme"
)

// AppState holds the window configuration and the session it edits.
type AppState struct {
	Session *command.Session
	Theme   *theme.Theme
	Size    image.Point
	Output  string
	Title   string

	updateCh  chan struct{}
	cleared   atomic.Bool
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the window chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(p image.Point) Option { return func(a *AppState) { a.Size = p } }

// WithOutput sets the file Ctrl+S saves to.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState editing s.
func New(s *command.Session, opts ...Option) *AppState {
	a := &AppState{
		Session:  s,
		Theme:    theme.Default(),
		Size:     display.FallbackSize,
		Output:   "design.png",
		Title:    "ShineyCanvas",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// NotifyChanged requests a repaint after the session was changed from
// outside the window, for example by a command typed on stdin.
func (a *AppState) NotifyChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

// SelectionCleared tells the window the selection was emptied. Pass it to
// the editor as its selection-cleared callback.
func (a *AppState) SelectionCleared() {
	a.cleared.Store(true)
	a.NotifyChanged()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window until it is closed or Q is pressed.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.Size.X, Height: a.Size.Y, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		a.notifyClose()
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	u := newUI(a.Session, a.Theme, a.Output)
	u.resize(a.Size.X, a.Size.Y)

	for {
		e := w.NextEvent()
		if a.cleared.Swap(false) {
			u.selectionCleared()
		}
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				u.resize(e.WidthPx, e.HeightPx)
			}
		case paint.Event:
			drawFrame(s, w, u)
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			dirty := false
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				dirty = u.press(p)
			case e.Direction == mouse.DirNone:
				dirty = u.hoverAt(p)
			}
			if dirty {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if u.keyPress(e.Rune, e.Code, e.Modifiers) {
				w.Send(paint.Event{})
			}
			if u.quit {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, u *ui) {
	if u.width <= 0 || u.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{u.width, u.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	u.paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
