// Package command implements the line-oriented editing language shared by
// the draw, interactive and serve front ends.
package command

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
)

// Session serialises access to one editor and its canvas. Every exported
// method takes the session lock.
type Session struct {
	mu     sync.Mutex
	ed     *editor.Editor
	canvas *scene.Canvas

	saveDir   string
	copyImage func(image.Image) error
	onSave    func(path string)
	onCopy    func(detail string, img image.Image)
}

// Option configures a Session.
type Option func(*Session)

// WithSaveDir resolves relative save paths against dir.
func WithSaveDir(dir string) Option { return func(s *Session) { s.saveDir = dir } }

// WithClipboard sets the function the copy command hands the page image to.
func WithClipboard(fn func(image.Image) error) Option {
	return func(s *Session) { s.copyImage = fn }
}

// WithSaveHook registers fn to run after every successful save.
func WithSaveHook(fn func(path string)) Option { return func(s *Session) { s.onSave = fn } }

// WithCopyHook registers fn to run after every successful copy.
func WithCopyHook(fn func(detail string, img image.Image)) Option { return func(s *Session) { s.onCopy = fn } }

// New wraps an initialised editor and the canvas it drives.
func New(ed *editor.Editor, canvas *scene.Canvas, opts ...Option) *Session {
	s := &Session{ed: ed, canvas: canvas}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Exec runs one command line, writing its output to out. done reports that
// the line asked to end the session.
func (s *Session) Exec(out io.Writer, line string) (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd := Parse(line)
	if cmd.Name == "" {
		return false, nil
	}
	scene.Logger().Debug("exec", "command", cmd.Name, "args", cmd.Args)
	switch cmd.Name {
	case "exit", "quit":
		return true, nil
	}
	h, ok := handlers[cmd.Name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
	}
	return false, h(s, out, cmd)
}

// Script runs every line of r in order and stops at the first error or at
// exit. Errors name the failing line.
func (s *Session) Script(r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		done, err := s.Exec(out, scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// REPL reads commands from in until EOF or exit, printing prompt before each
// one. Command errors go to errOut and do not end the loop.
func (s *Session) REPL(in io.Reader, out, errOut io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		done, err := s.Exec(out, scanner.Text())
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// Do runs fn with the session lock held.
func (s *Session) Do(fn func(ed *editor.Editor, c *scene.Canvas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ed, s.canvas)
}

// Frame returns the surface image from the last repaint, controls included.
// Each repaint allocates a new image, so the result may be read after the
// lock is released.
func (s *Session) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Frame()
}

// WritePNG encodes the page, without selection controls, to w.
func (s *Session) WritePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.EncodePNG(w, s.ed.Handle().Workspace())
}

// Save writes the page to path as PNG and returns the path written, after
// resolving it against the save directory.
func (s *Session) Save(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(path)
}

// Copy publishes the page to the clipboard.
func (s *Session) Copy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copy()
}

func (s *Session) resolvePath(path string) string {
	if s.saveDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.saveDir, path)
}

func (s *Session) save(path string) (string, error) {
	path = s.resolvePath(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.canvas.EncodePNG(f, s.ed.Handle().Workspace()); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if s.onSave != nil {
		s.onSave(path)
	}
	return path, nil
}

var errNoClipboard = errors.New("clipboard unavailable")

func (s *Session) copy() error {
	if s.copyImage == nil {
		return errNoClipboard
	}
	img, err := s.canvas.Export(s.ed.Handle().Workspace())
	if err != nil {
		return err
	}
	if err := s.copyImage(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	if s.onCopy != nil {
		s.onCopy(fmt.Sprintf("%dx%d page", img.Bounds().Dx(), img.Bounds().Dy()), img)
	}
	return nil
}
