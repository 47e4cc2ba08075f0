package appstate

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
	"github.com/example/shineycanvas/internal/theme"
)

func newTestUI(t *testing.T, output string) (*ui, *scene.Canvas) {
	t.Helper()
	c := scene.NewCanvas(0, 0)
	ed := editor.New()
	ed.Init(c, editor.FixedContainer{Width: 400, Height: 400})
	t.Cleanup(ed.Dispose)
	u := newUI(command.New(ed, c), theme.Default(), output)
	u.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	u.resize(800, 900)
	return u, c
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// controlFor returns the first control whose button is labelled label.
func controlFor(t *testing.T, u *ui, label string) control {
	t.Helper()
	for _, c := range u.controls {
		if b, ok := c.Button.(*ActionButton); ok && b.label == label {
			return c
		}
	}
	t.Fatalf("no control labelled %q", label)
	return control{}
}

func swatchFor(t *testing.T, u *ui, col color.RGBA) control {
	t.Helper()
	for _, c := range u.controls {
		if s, ok := c.Button.(*Swatch); ok && s.color == col {
			return c
		}
	}
	t.Fatalf("no swatch for %v", col)
	return control{}
}

func TestLayoutStaysInToolbar(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('c', key.CodeC, 0)
	for _, tool := range []Tool{ToolSelect, ToolShapes, ToolFill, ToolStrokeColor, ToolStrokeWidth, ToolOpacity} {
		u.tool = tool
		st := u.toolbarState()
		for i, ctl := range u.controls {
			r := ctl.Rect()
			if r.Empty() {
				t.Fatalf("control %d not laid out", i)
			}
			if r.Min.X < 0 || r.Max.X > u.toolbarWidth {
				t.Errorf("control %d at %v leaves the toolbar", i, r)
			}
			if !ctl.shown(st) {
				continue
			}
			for j := i + 1; j < len(u.controls); j++ {
				if u.controls[j].shown(st) && r.Overlaps(u.controls[j].Rect()) {
					t.Errorf("%s: controls %d and %d overlap", tool, i, j)
				}
			}
		}
	}
	cr := u.canvasRect()
	if c.Width() != cr.Dx() || c.Height() != cr.Dy() {
		t.Fatalf("surface %dx%d, canvas area %v", c.Width(), c.Height(), cr)
	}
}

func TestToolbarAddsShape(t *testing.T) {
	u, c := newTestUI(t, "")
	diamond := controlFor(t, u, "D:Diamond")
	if u.press(center(diamond.Rect())) {
		t.Fatal("shape buttons are hidden outside the shapes tool")
	}
	u.press(center(controlFor(t, u, "2:Shapes").Rect()))
	if u.tool != ToolShapes {
		t.Fatalf("tool = %s", u.tool)
	}
	if !u.press(center(diamond.Rect())) {
		t.Fatal("press should request a repaint")
	}
	objs := c.Objects()
	if len(objs) != 2 || objs[1].Kind != scene.KindPolygon {
		t.Fatalf("objects after diamond press: %d", len(objs))
	}
	if !strings.HasPrefix(u.message, "added diamond") {
		t.Errorf("message = %q", u.message)
	}
}

func TestToolToggle(t *testing.T) {
	u, _ := newTestUI(t, "")
	u.keyPress('2', key.Code2, 0)
	if u.tool != ToolShapes {
		t.Fatalf("tool = %s", u.tool)
	}
	u.keyPress('2', key.Code2, 0)
	if u.tool != ToolSelect {
		t.Fatalf("choosing the active tool again should return to select, got %s", u.tool)
	}
}

func TestSelectionToolsNeedSelection(t *testing.T) {
	u, _ := newTestUI(t, "")
	st := u.toolbarState()
	for _, label := range []string{"3:Fill", "4:Stroke", "5:Width", "6:Opacity", "]:Forward", "[:Backward"} {
		if controlFor(t, u, label).shown(st) {
			t.Errorf("%s shown with nothing selected", label)
		}
	}
	for _, label := range []string{"1:Select", "2:Shapes"} {
		if !controlFor(t, u, label).shown(st) {
			t.Errorf("%s hidden", label)
		}
	}
	u.keyPress('3', key.Code3, 0)
	if u.tool != ToolSelect || u.message != "select an object first" {
		t.Fatalf("tool %s message %q", u.tool, u.message)
	}

	u.keyPress('c', key.CodeC, 0)
	st = u.toolbarState()
	if !controlFor(t, u, "3:Fill").shown(st) || !controlFor(t, u, "]:Forward").shown(st) {
		t.Fatal("selection tools should appear once something is selected")
	}
}

func TestSelectionClearedResetsTool(t *testing.T) {
	u, _ := newTestUI(t, "")
	u.keyPress('c', key.CodeC, 0)
	u.keyPress('5', key.Code5, 0)
	if u.tool != ToolStrokeWidth {
		t.Fatalf("tool = %s", u.tool)
	}
	u.selectionCleared()
	if u.tool != ToolSelect {
		t.Fatalf("tool after clear = %s", u.tool)
	}

	u.keyPress('2', key.Code2, 0)
	u.selectionCleared()
	if u.tool != ToolShapes {
		t.Fatal("shapes does not depend on the selection")
	}
}

func TestSwatchFollowsTool(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('c', key.CodeC, 0)
	circle := c.ActiveObject()
	if circle == nil {
		t.Fatal("circle not selected after insert")
	}
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	if swatchFor(t, u, red).shown(u.toolbarState()) {
		t.Fatal("palette hidden under the select tool")
	}
	u.keyPress('3', key.Code3, 0)
	u.press(center(swatchFor(t, u, red).Rect()))
	if circle.Fill != "#ff0000" {
		t.Fatalf("fill = %q", circle.Fill)
	}
	u.press(center(controlFor(t, u, "4:Stroke").Rect()))
	if u.tool != ToolStrokeColor {
		t.Fatalf("tool = %s", u.tool)
	}
	u.press(center(swatchFor(t, u, blue).Rect()))
	if circle.Stroke != "#0000ff" || circle.Fill != "#ff0000" {
		t.Fatalf("fill %q stroke %q", circle.Fill, circle.Stroke)
	}

	st := u.toolbarState()
	if !swatchFor(t, u, blue).active(st) || swatchFor(t, u, red).active(st) {
		t.Error("stroke tool should highlight the blue swatch only")
	}
	u.keyPress('3', key.Code3, 0)
	if !swatchFor(t, u, red).active(u.toolbarState()) {
		t.Error("fill tool should highlight the red swatch")
	}
}

func TestStrokeOptions(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('s', key.CodeS, 0)
	sq := c.ActiveObject()
	u.keyPress('5', key.Code5, 0)
	if !controlFor(t, u, "2px").active(u.toolbarState()) {
		t.Error("default width should be highlighted")
	}
	u.press(center(controlFor(t, u, "8px").Rect()))
	u.press(center(controlFor(t, u, "dash 10,5").Rect()))
	u.keyPress('6', key.Code6, 0)
	u.press(center(controlFor(t, u, "opacity 50%").Rect()))
	if sq.StrokeWidth != 8 || sq.Opacity != 0.5 {
		t.Fatalf("width %g opacity %g", sq.StrokeWidth, sq.Opacity)
	}
	if command.FormatDash(sq.StrokeDashArray) != "10,5" {
		t.Fatalf("dash = %v", sq.StrokeDashArray)
	}
	st := u.toolbarState()
	for _, label := range []string{"8px", "dash 10,5", "opacity 50%"} {
		if !controlFor(t, u, label).active(st) {
			t.Errorf("%s not highlighted", label)
		}
	}
}

func TestKeyboardSelection(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('c', key.CodeC, 0)
	u.keyPress('t', key.CodeT, 0)
	u.keyPress(-1, key.CodeEscape, 0)
	if len(c.ActiveObjects()) != 0 {
		t.Fatal("escape should clear the selection")
	}
	u.keyPress('a', key.CodeA, key.ModControl)
	if len(c.ActiveObjects()) != 2 {
		t.Fatalf("ctrl+a selected %d", len(c.ActiveObjects()))
	}
	u.keyPress('[', key.CodeLeftSquareBracket, 0)
	if c.IndexOf(c.Objects()[0]) != 0 || c.Objects()[0].Name != editor.WorkspaceName {
		t.Fatal("page must stay at the back")
	}
	if u.keyPress('z', key.CodeZ, 0) {
		t.Error("unbound key should not repaint")
	}
}

func TestTextEntry(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('x', key.CodeX, 0)
	if !u.text.active {
		t.Fatal("x should start text entry")
	}
	for _, r := range "hex" {
		u.keyPress(r, 0, 0)
	}
	u.keyPress(-1, key.CodeDeleteBackspace, 0)
	u.keyPress('y', key.CodeY, 0)
	u.keyPress('\r', key.CodeReturnEnter, 0)
	if u.text.active {
		t.Fatal("enter should end text entry")
	}
	o := c.ActiveObject()
	if o == nil || o.Text != "hey" {
		t.Fatalf("text object = %+v", o)
	}

	u.keyPress('x', key.CodeX, 0)
	u.keyPress('q', key.CodeQ, 0)
	u.keyPress(-1, key.CodeEscape, 0)
	if u.quit || len(c.Objects()) != 2 {
		t.Fatal("escape should cancel text entry without side effects")
	}
}

func TestCanvasClickPicks(t *testing.T) {
	u, c := newTestUI(t, "")
	u.keyPress('x', key.CodeX, 0)
	for _, r := range "hi" {
		u.keyPress(r, 0, 0)
	}
	u.keyPress('\r', key.CodeReturnEnter, 0)
	u.keyPress(-1, key.CodeEscape, 0)

	u.press(center(u.canvasRect()))
	if o := c.ActiveObject(); o == nil || o.Text != "hi" {
		t.Fatalf("click on the text selected %+v", o)
	}
	cr := u.canvasRect()
	u.press(cr.Min.Add(image.Pt(2, 2)))
	if len(c.ActiveObjects()) != 0 {
		t.Fatal("click on empty page area should clear the selection")
	}
	if u.press(image.Pt(u.width-1, u.height-1)) {
		t.Error("status line click should do nothing")
	}
}

func TestHover(t *testing.T) {
	u, _ := newTestUI(t, "")
	p := center(u.controls[0].Rect())
	if !u.hoverAt(p) {
		t.Fatal("entering a control should repaint")
	}
	if u.hoverAt(p) {
		t.Fatal("hovering the same control should not repaint")
	}
	if !u.hoverAt(center(u.canvasRect())) || u.hover != -1 {
		t.Fatal("leaving the toolbar should clear hover")
	}
}

func TestSaveAndCopyShortcuts(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.png")
	u, _ := newTestUI(t, out)
	u.keyPress('s', key.CodeS, key.ModControl)
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("ctrl+s did not save: %v", err)
	}
	if u.message != "saved "+out {
		t.Errorf("message = %q", u.message)
	}
	u.keyPress('c', key.CodeC, key.ModControl)
	if !strings.Contains(u.message, "clipboard unavailable") {
		t.Errorf("copy without clipboard: message = %q", u.message)
	}
}

func TestQuit(t *testing.T) {
	u, _ := newTestUI(t, "")
	u.keyPress('Q', key.CodeQ, 0)
	if !u.quit {
		t.Fatal("q should quit")
	}
}

func TestPaint(t *testing.T) {
	u, _ := newTestUI(t, "")
	dst := image.NewRGBA(image.Rect(0, 0, u.width, u.height))
	u.paint(dst)
	th := u.theme

	if got := dst.RGBAAt(u.width/2, u.height-3); got != th.StatusBackground {
		t.Errorf("status pixel = %v", got)
	}
	// The page centre is white until something is drawn on it.
	if got := dst.RGBAAt(center(u.canvasRect()).X, center(u.canvasRect()).Y); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("page centre = %v", got)
	}
	if got := dst.RGBAAt(u.toolbarWidth-3, u.height-statusHeight-4); got != th.ToolbarBackground {
		t.Errorf("toolbar pixel = %v", got)
	}
}

func TestMessageExpires(t *testing.T) {
	u, _ := newTestUI(t, "")
	u.run("fill nonsense")
	if u.message == "" {
		t.Fatal("error should be shown")
	}
	dst := image.NewRGBA(image.Rect(0, 0, u.width, u.height))
	u.paint(dst)
	withMsg := dst.RGBAAt(center(u.canvasRect()).X, u.canvasRect().Max.Y-20)

	u.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	u.paint(dst)
	without := dst.RGBAAt(center(u.canvasRect()).X, u.canvasRect().Max.Y-20)
	if withMsg == without {
		t.Error("expired message should no longer be drawn")
	}
}
