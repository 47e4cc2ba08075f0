package command

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *editor.Editor, *scene.Canvas) {
	t.Helper()
	c := scene.NewCanvas(0, 0)
	ed := editor.New(editor.WithWorkspace(editor.WorkspaceOptions{Width: 90, Height: 120, Fill: "white"}))
	ed.Init(c, editor.FixedContainer{Width: 200, Height: 200})
	t.Cleanup(ed.Dispose)
	return New(ed, c, opts...), ed, c
}

func exec(t *testing.T, s *Session, line string) string {
	t.Helper()
	var out bytes.Buffer
	if _, err := s.Exec(&out, line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
	return out.String()
}

func TestParse(t *testing.T) {
	cmd := Parse("  ADD text hello   world ")
	if cmd.Name != "add" || strings.Join(cmd.Args, "|") != "text|hello|world" {
		t.Fatalf("unexpected parse %+v", cmd)
	}
	if Parse("# comment").Name != "" || Parse("   ").Name != "" {
		t.Fatal("comments and blanks should parse empty")
	}
}

func TestParseDash(t *testing.T) {
	got, err := ParseDash("5, 2.5")
	if err != nil || len(got) != 2 || got[1] != 2.5 {
		t.Fatalf("ParseDash: %v %v", got, err)
	}
	if got, _ := ParseDash("none"); got == nil || len(got) != 0 {
		t.Fatalf("none should be empty, got %v", got)
	}
	if _, err := ParseDash("1,x"); err == nil {
		t.Fatal("expected error")
	}
	if FormatDash([]float64{5, 2.5}) != "5,2.5" || FormatDash(nil) != "none" {
		t.Fatal("FormatDash mismatch")
	}
}

func TestAddAndGet(t *testing.T) {
	s, _, c := newTestSession(t)
	exec(t, s, "fill #ff0000")
	out := exec(t, s, "add circle")
	if !strings.HasPrefix(out, "added circle ") {
		t.Fatalf("unexpected output %q", out)
	}
	if len(c.Objects()) != 2 {
		t.Fatalf("expected page and circle, got %d objects", len(c.Objects()))
	}
	exec(t, s, "opacity 0.5")
	if got := exec(t, s, "get opacity"); got != "0.5\n" {
		t.Fatalf("get opacity = %q", got)
	}
	if got := exec(t, s, "get fill"); got != "#ff0000\n" {
		t.Fatalf("get fill = %q", got)
	}
	exec(t, s, "select none")
	if got := exec(t, s, "get opacity"); got != "0.5\n" {
		t.Fatalf("default opacity = %q", got)
	}
}

func TestAddText(t *testing.T) {
	s, _, c := newTestSession(t)
	exec(t, s, "add text hello world")
	o := c.ActiveObject()
	if o == nil || o.Text != "hello world" || o.Kind != scene.KindText {
		t.Fatalf("unexpected text object %+v", o)
	}
	exec(t, s, "stroke blue")
	if o.Fill != "blue" {
		t.Fatalf("stroke on text should paint fill, got %q", o.Fill)
	}
	if got := exec(t, s, "get stroke"); got != "blue\n" {
		t.Fatalf("get stroke = %q", got)
	}
}

func TestSelectAndDash(t *testing.T) {
	s, _, c := newTestSession(t)
	exec(t, s, "add circle")
	exec(t, s, "add diamond")
	exec(t, s, "select 1 2")
	if len(c.ActiveObjects()) != 2 {
		t.Fatalf("expected two selected, got %d", len(c.ActiveObjects()))
	}
	exec(t, s, "dash 4,2")
	for _, o := range c.ActiveObjects() {
		if FormatDash(o.StrokeDashArray) != "4,2" {
			t.Fatalf("dash not applied: %v", o.StrokeDashArray)
		}
	}
	exec(t, s, "dash none")
	if got := exec(t, s, "get dash"); got != "none\n" {
		t.Fatalf("get dash = %q", got)
	}
	if _, err := s.Exec(&bytes.Buffer{}, "select 0"); err == nil {
		t.Fatal("selecting the page should fail")
	}
	exec(t, s, "select all")
	if len(c.ActiveObjects()) != 2 {
		t.Fatalf("select all picked %d", len(c.ActiveObjects()))
	}
}

func TestForwardBackwardKeepPageAtBack(t *testing.T) {
	s, ed, c := newTestSession(t)
	exec(t, s, "add circle")
	exec(t, s, "add square")
	exec(t, s, "select all")
	for i := 0; i < 3; i++ {
		exec(t, s, "backward")
		exec(t, s, "forward")
		exec(t, s, "backward")
	}
	if c.IndexOf(ed.Handle().Workspace()) != 0 {
		t.Fatal("page left the back")
	}
}

func TestList(t *testing.T) {
	s, _, _ := newTestSession(t)
	exec(t, s, "add triangle")
	out := exec(t, s, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected list %q", out)
	}
	if !strings.Contains(lines[0], "clip") || !strings.HasPrefix(lines[1], "*1\ttriangle") {
		t.Fatalf("unexpected list %q", out)
	}
}

func TestErrors(t *testing.T) {
	s, _, _ := newTestSession(t)
	tests := []struct {
		line string
		want error
	}{
		{"frobnicate", ErrUnknownCommand},
		{"fill", ErrUsage},
		{"resize 10", ErrUsage},
	}
	for _, tt := range tests {
		_, err := s.Exec(&bytes.Buffer{}, tt.line)
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: got %v, want %v", tt.line, err, tt.want)
		}
	}
	for _, line := range []string{"fill nope", "width abc", "add hexagon", "get colour", "add text"} {
		if _, err := s.Exec(&bytes.Buffer{}, line); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
	if done, err := s.Exec(&bytes.Buffer{}, "exit"); !done || err != nil {
		t.Fatalf("exit: done=%v err=%v", done, err)
	}
}

func TestSaveWritesPage(t *testing.T) {
	dir := t.TempDir()
	var saved string
	s, _, _ := newTestSession(t, WithSaveDir(dir), WithSaveHook(func(p string) { saved = p }))
	exec(t, s, "add circle")
	out := exec(t, s, "save out/page.png")
	want := filepath.Join(dir, "out", "page.png")
	if saved != want || !strings.Contains(out, want) {
		t.Fatalf("saved=%q out=%q", saved, out)
	}
	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 90 || img.Bounds().Dy() != 120 {
		t.Fatalf("unexpected page size %v", img.Bounds())
	}
}

func TestCopy(t *testing.T) {
	var got image.Image
	var detail string
	s, _, _ := newTestSession(t,
		WithClipboard(func(img image.Image) error { got = img; return nil }),
		WithCopyHook(func(d string, _ image.Image) { detail = d }),
	)
	exec(t, s, "copy")
	if got == nil || got.Bounds().Dx() != 90 {
		t.Fatalf("unexpected clipboard image %v", got)
	}
	if detail != "90x120 page" {
		t.Fatalf("unexpected detail %q", detail)
	}

	bare, _, _ := newTestSession(t)
	if _, err := bare.Exec(&bytes.Buffer{}, "copy"); err == nil {
		t.Fatal("expected error without clipboard")
	}
}

func TestScriptStopsAtError(t *testing.T) {
	s, _, c := newTestSession(t)
	script := "add circle\n# comment\nfill red\nbogus\nadd square\n"
	err := s.Script(strings.NewReader(script), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(c.Objects()) != 2 {
		t.Fatalf("script ran past the error: %d objects", len(c.Objects()))
	}
}

func TestREPLContinuesAfterError(t *testing.T) {
	s, _, c := newTestSession(t)
	var out, errOut bytes.Buffer
	in := strings.NewReader("bogus\nadd circle\nexit\nadd square\n")
	if err := s.REPL(in, &out, &errOut, "> "); err != nil {
		t.Fatalf("REPL: %v", err)
	}
	if !strings.Contains(errOut.String(), "unknown command") {
		t.Fatalf("error not reported: %q", errOut.String())
	}
	if len(c.Objects()) != 2 {
		t.Fatalf("expected page and circle, got %d", len(c.Objects()))
	}
}

func TestState(t *testing.T) {
	s, ed, _ := newTestSession(t)
	exec(t, s, "width 6")
	exec(t, s, "add square-full")
	st := s.State()
	if st.Revision != ed.Revision() {
		t.Fatalf("revision %d vs %d", st.Revision, ed.Revision())
	}
	if st.Defaults.StrokeWidth != 6 || st.Active.StrokeWidth != 6 {
		t.Fatalf("unexpected widths %+v %+v", st.Defaults, st.Active)
	}
	if len(st.Objects) != 2 || !st.Objects[1].Selected || st.Objects[0].Name != editor.WorkspaceName {
		t.Fatalf("unexpected objects %+v", st.Objects)
	}
	if st.Defaults.StrokeDashArray == nil {
		t.Fatal("dash should encode as an empty list")
	}
}

func TestPick(t *testing.T) {
	s, _, c := newTestSession(t)
	exec(t, s, "add text hi")
	if got := exec(t, s, "pick 100 100"); got != "picked 1 text\n" {
		t.Fatalf("pick centre = %q", got)
	}
	if len(c.ActiveObjects()) != 1 {
		t.Fatalf("selection = %d", len(c.ActiveObjects()))
	}
	// The page is under every corner but cannot be picked.
	if got := exec(t, s, "pick 2 2"); got != "picked nothing\n" {
		t.Fatalf("pick corner = %q", got)
	}
	if len(c.ActiveObjects()) != 0 {
		t.Fatal("pick on empty space should clear the selection")
	}
	if _, err := s.Exec(&bytes.Buffer{}, "pick x 1"); err == nil {
		t.Fatal("expected error for bad coordinate")
	}
}

func TestFrameTracksRepaint(t *testing.T) {
	s, _, _ := newTestSession(t)
	before := s.Frame()
	exec(t, s, "add square")
	after := s.Frame()
	if after == nil || after == before {
		t.Fatal("add should repaint into a new frame")
	}
	if after.Bounds().Dx() != 200 || after.Bounds().Dy() != 200 {
		t.Fatalf("frame bounds = %v", after.Bounds())
	}
}

func TestToolbarReflectsSelection(t *testing.T) {
	s, _, _ := newTestSession(t)
	attrs, n := s.Toolbar()
	if n != 0 || attrs.Fill != editor.DefaultFillColor {
		t.Fatalf("empty toolbar = %+v, %d", attrs, n)
	}
	exec(t, s, "add circle")
	exec(t, s, "fill #00ff00")
	attrs, n = s.Toolbar()
	if n != 1 || attrs.Fill != "#00ff00" {
		t.Fatalf("toolbar = %+v, %d", attrs, n)
	}
}
