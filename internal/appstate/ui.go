package appstate

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"

	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/theme"
)

const (
	rowHeight    = 24
	optionHeight = 18
	swatchSize   = 16
	swatchStep   = 18
	sectionGap   = 6
	statusHeight = 24
	minToolbar   = 120
	messageTTL   = 2 * time.Second
)

// KeyShortcut identifies a key press. Printable keys match on Rune, the
// rest on Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// control is a laid-out toolbar button. visible hides it from drawing and
// hit testing; active highlights it.
type control struct {
	*CacheButton
	visible func(st toolbarState) bool
	active  func(st toolbarState) bool
}

func (c control) shown(st toolbarState) bool {
	return c.visible == nil || c.visible(st)
}

type toolbarState struct {
	attrs    command.Attributes
	selected int
	tool     Tool
}

type textEntry struct {
	active bool
	value  string
}

// ui is the window model: layout, hit testing and key handling. It is owned
// by the event goroutine.
type ui struct {
	session *command.Session
	theme   *theme.Theme
	output  string

	width, height int
	toolbarWidth  int
	tool          Tool
	controls      []control
	hover         int
	text          textEntry

	actions map[string]func()
	keys    map[KeyShortcut]string

	message      string
	messageUntil time.Time
	now          func() time.Time
	quit         bool
}

func newUI(s *command.Session, th *theme.Theme, output string) *ui {
	if th == nil {
		th = theme.Default()
	}
	u := &ui{
		session: s,
		theme:   th,
		output:  output,
		hover:   -1,
		now:     time.Now,
	}
	u.registerActions()
	u.toolbarWidth = u.measureToolbar()
	u.buildControls()
	return u
}

// ShapeShortcut pairs a shape with the window key that inserts it.
type ShapeShortcut struct {
	Kind  editor.ShapeKind
	Key   rune
	Label string
}

var shapeActions = []ShapeShortcut{
	{editor.ShapeCircle, 'c', "Circle"},
	{editor.ShapeSquare, 's', "Square"},
	{editor.ShapeSquareFull, 'f', "Square Full"},
	{editor.ShapeTriangle, 't', "Triangle"},
	{editor.ShapeInvertedTriangle, 'i', "Inverted"},
	{editor.ShapeDiamond, 'd', "Diamond"},
}

// ShapeShortcuts lists the toolbar shapes in toolbar order.
func ShapeShortcuts() []ShapeShortcut {
	return slices.Clone(shapeActions)
}

func (u *ui) registerActions() {
	u.actions = map[string]func(){}
	u.keys = map[KeyShortcut]string{}
	register := func(name string, fn func(), keys ...KeyShortcut) {
		u.actions[name] = fn
		for _, k := range keys {
			u.keys[k] = name
		}
	}
	for _, tb := range toolButtons {
		tool := tb.tool
		register("tool-"+tool.String(), func() { u.chooseTool(tool) }, KeyShortcut{Rune: tb.key})
	}
	for _, sa := range shapeActions {
		line := "add " + string(sa.Kind)
		register(string(sa.Kind), func() { u.run(line) }, KeyShortcut{Rune: sa.Key})
	}
	register("text", u.beginText, KeyShortcut{Rune: 'x'})
	register("forward", func() { u.run("forward") }, KeyShortcut{Rune: ']'})
	register("backward", func() { u.run("backward") }, KeyShortcut{Rune: '['})
	register("select-all", func() { u.run("select all") }, KeyShortcut{Rune: 'a', Modifiers: key.ModControl})
	register("select-none", func() { u.run("select none") }, KeyShortcut{Code: key.CodeEscape})
	register("copy", u.copy, KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	register("save", u.save, KeyShortcut{Rune: 's', Modifiers: key.ModControl})
	register("quit", func() { u.quit = true }, KeyShortcut{Rune: 'q'})
}

// measureToolbar widens the toolbar until every label fits.
func (u *ui) measureToolbar() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := minToolbar
	labels := []string{"ShineyCanvas", "]:Forward", "[:Backward", "X:Text"}
	for _, sa := range shapeActions {
		labels = append(labels, keyLabel(sa.Key, sa.Label))
	}
	for _, tb := range toolButtons {
		labels = append(labels, keyLabel(tb.key, tb.label))
	}
	for _, l := range labels {
		w = max(w, d.MeasureString(l).Ceil()+8)
	}
	return w
}

func keyLabel(k rune, label string) string {
	return fmt.Sprintf("%c:%s", unicode.ToUpper(k), label)
}

func (u *ui) add(b Button, visible, active func(toolbarState) bool) {
	u.controls = append(u.controls, control{CacheButton: &CacheButton{Button: b}, visible: visible, active: active})
}

func (u *ui) button(label string, action func(), visible, active func(toolbarState) bool) {
	u.add(&ActionButton{label: label, theme: u.theme, onActivate: action}, visible, active)
}

func hasSelection(st toolbarState) bool { return st.selected > 0 }

func toolIs(tools ...Tool) func(toolbarState) bool {
	return func(st toolbarState) bool { return slices.Contains(tools, st.tool) }
}

// buildControls creates every toolbar control. Positions are assigned by
// layout.
func (u *ui) buildControls() {
	u.controls = nil
	for _, tb := range toolButtons {
		var visible func(toolbarState) bool
		if tb.tool.SelectionDependent() {
			visible = hasSelection
		}
		u.button(keyLabel(tb.key, tb.label), u.actions["tool-"+tb.tool.String()], visible, toolIs(tb.tool))
	}
	u.button("]:Forward", u.actions["forward"], hasSelection, nil)
	u.button("[:Backward", u.actions["backward"], hasSelection, nil)

	shapes := toolIs(ToolShapes)
	for _, sa := range shapeActions {
		u.button(keyLabel(sa.Key, sa.Label), u.actions[string(sa.Kind)], shapes, nil)
	}
	u.button("X:Text", u.actions["text"], shapes, func(toolbarState) bool { return u.text.active })

	colors := toolIs(ToolFill, ToolStrokeColor)
	for _, p := range palette {
		value := paintValue(p.Color)
		u.add(&Swatch{color: p.Color, theme: u.theme, onActivate: func() { u.applyPaint(value) }}, colors,
			func(st toolbarState) bool {
				if st.tool == ToolStrokeColor {
					return samePaint(st.attrs.Stroke, value)
				}
				return samePaint(st.attrs.Fill, value)
			})
	}

	widths := toolIs(ToolStrokeWidth)
	for _, w := range strokeWidths {
		line := "width " + strconv.FormatFloat(w, 'g', -1, 64)
		u.add(&ActionButton{label: fmt.Sprintf("%gpx", w), theme: u.theme, sample: int(w), onActivate: func() { u.run(line) }},
			widths, func(st toolbarState) bool { return st.attrs.StrokeWidth == w })
	}
	for _, d := range dashPresets {
		line := "dash " + d.value
		u.button(d.label, func() { u.run(line) }, widths, func(st toolbarState) bool {
			return command.FormatDash(st.attrs.StrokeDashArray) == d.value
		})
	}

	opacity := toolIs(ToolOpacity)
	for _, o := range opacityLevels {
		line := "opacity " + strconv.FormatFloat(o, 'g', -1, 64)
		u.button(fmt.Sprintf("opacity %.0f%%", o*100), func() { u.run(line) }, opacity, func(st toolbarState) bool {
			return st.attrs.Opacity == o
		})
	}
}

// layout positions the tool rows below the title and stacks every option
// panel from the same origin; only the active tool's panel is shown.
func (u *ui) layout() {
	tw := u.toolbarWidth
	i := 0
	place := func(y, h int) int {
		u.controls[i].SetRect(image.Rect(0, y, tw, y+h))
		i++
		return y + h
	}
	y := rowHeight
	for range toolButtons {
		y = place(y, rowHeight)
	}
	y += sectionGap
	y = place(y, rowHeight)
	y = place(y, rowHeight)
	panel := y + sectionGap

	y = panel
	for range len(shapeActions) + 1 {
		y = place(y, rowHeight)
	}

	y = panel
	x := 4
	for range palette {
		if x+swatchSize > tw {
			x = 4
			y += swatchStep
		}
		u.controls[i].SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStep
		i++
	}

	y = panel
	for range strokeWidths {
		y = place(y, optionHeight)
	}
	y += sectionGap
	for range dashPresets {
		y = place(y, optionHeight)
	}

	y = panel
	for range opacityLevels {
		y = place(y, optionHeight)
	}
}

// canvasRect is the part of the window the surface is shown in.
func (u *ui) canvasRect() image.Rectangle {
	return image.Rect(u.toolbarWidth, 0, max(u.width, u.toolbarWidth), max(u.height-statusHeight, 0))
}

// resize records the window size and resizes the surface to the canvas area.
func (u *ui) resize(width, height int) {
	u.width, u.height = width, height
	u.layout()
	cr := u.canvasRect()
	if cr.Dx() > 0 && cr.Dy() > 0 {
		u.run(fmt.Sprintf("resize %d %d", cr.Dx(), cr.Dy()))
	}
}

func (u *ui) hit(p image.Point, st toolbarState) int {
	for i, c := range u.controls {
		if c.shown(st) && p.In(c.Rect()) {
			return i
		}
	}
	return -1
}

// press handles a left click and reports whether a repaint is needed.
func (u *ui) press(p image.Point) bool {
	if i := u.hit(p, u.toolbarState()); i >= 0 {
		u.controls[i].Activate()
		return true
	}
	cr := u.canvasRect()
	if !p.In(cr) {
		return false
	}
	u.run(fmt.Sprintf("pick %d %d", p.X-cr.Min.X, p.Y-cr.Min.Y))
	return true
}

// hoverAt updates the hovered control and reports whether it changed.
func (u *ui) hoverAt(p image.Point) bool {
	i := u.hit(p, u.toolbarState())
	if i == u.hover {
		return false
	}
	u.hover = i
	return true
}

// keyPress handles one key press and reports whether a repaint is needed.
func (u *ui) keyPress(r rune, code key.Code, mods key.Modifiers) bool {
	mods &= key.ModControl | key.ModAlt | key.ModMeta
	if u.text.active {
		return u.textKey(r, code)
	}
	var name string
	var ok bool
	if r > 0 {
		name, ok = u.keys[KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}]
	}
	if !ok {
		name, ok = u.keys[KeyShortcut{Code: code, Modifiers: mods}]
	}
	if !ok {
		return false
	}
	u.actions[name]()
	return true
}

func (u *ui) textKey(r rune, code key.Code) bool {
	switch code {
	case key.CodeReturnEnter:
		value := strings.TrimSpace(u.text.value)
		u.text = textEntry{}
		if value != "" {
			u.run("add text " + value)
		}
		return true
	case key.CodeEscape:
		u.text = textEntry{}
		return true
	case key.CodeDeleteBackspace:
		if v := []rune(u.text.value); len(v) > 0 {
			u.text.value = string(v[:len(v)-1])
		}
		return true
	}
	if r > 0 && unicode.IsPrint(r) {
		u.text.value += string(r)
		return true
	}
	return false
}

func (u *ui) beginText() {
	u.text = textEntry{active: true}
}

// chooseTool switches tools. Tools that edit the selection need one.
func (u *ui) chooseTool(t Tool) {
	if t.SelectionDependent() && t != u.tool {
		if _, n := u.session.Toolbar(); n == 0 {
			u.flash("select an object first")
			return
		}
	}
	u.tool = switchTool(u.tool, t)
}

// selectionCleared drops back to select when the active tool has nothing
// left to edit.
func (u *ui) selectionCleared() {
	if u.tool.SelectionDependent() {
		u.tool = ToolSelect
	}
}

func (u *ui) applyPaint(value string) {
	switch u.tool {
	case ToolFill:
		u.run("fill " + value)
	case ToolStrokeColor:
		u.run("stroke " + value)
	}
}

func (u *ui) save() {
	path, err := u.session.Save(u.output)
	if err != nil {
		u.fail("save", err)
		return
	}
	u.flash("saved " + path)
}

func (u *ui) copy() {
	if err := u.session.Copy(); err != nil {
		u.fail("copy", err)
		return
	}
	u.flash("page copied to clipboard")
}

// run executes a command line against the session and shows its last line
// of output, or its error, as the status message.
func (u *ui) run(line string) {
	var out bytes.Buffer
	done, err := u.session.Exec(&out, line)
	if err != nil {
		u.fail(line, err)
		return
	}
	if done {
		u.quit = true
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if msg := strings.TrimSpace(lines[len(lines)-1]); msg != "" {
		u.flash(msg)
	}
}

func (u *ui) fail(what string, err error) {
	log.Printf("%s: %v", what, err)
	u.flash(err.Error())
}

func (u *ui) flash(msg string) {
	u.message = msg
	u.messageUntil = u.now().Add(messageTTL)
}

func (u *ui) toolbarState() toolbarState {
	attrs, n := u.session.Toolbar()
	return toolbarState{attrs: attrs, selected: n, tool: u.tool}
}
