package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/shineycanvas/internal/command"
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paint composes the whole window into dst: the surface frame, the toolbar,
// the status line and any transient message.
func (u *ui) paint(dst *image.RGBA) {
	th := u.theme
	b := dst.Bounds()
	draw.Draw(dst, b, &image.Uniform{th.Background}, image.Point{}, draw.Src)

	cr := u.canvasRect()
	if frame := u.session.Frame(); frame != nil && !cr.Empty() {
		if frame.Bounds().Size() == cr.Size() {
			draw.Draw(dst, cr, frame, frame.Bounds().Min, draw.Src)
		} else {
			// The surface lags a resize by one frame; stretch until it catches up.
			xdraw.ApproxBiLinear.Scale(dst, cr, frame, frame.Bounds(), draw.Src, nil)
		}
	}

	st := u.toolbarState()
	u.drawToolbar(dst, st)
	u.drawStatus(dst, st)
	u.drawMessage(dst)
}

func (u *ui) drawToolbar(dst *image.RGBA, st toolbarState) {
	th := u.theme
	bar := image.Rect(0, 0, u.toolbarWidth, u.height-statusHeight)
	draw.Draw(dst, bar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	drawLabel(dst, "ShineyCanvas", image.Pt(4, 16), th.Foreground)
	for i, c := range u.controls {
		if c.Rect().Empty() || !c.shown(st) {
			continue
		}
		state := StateDefault
		switch {
		case c.active != nil && c.active(st):
			state = StateActive
		case i == u.hover:
			state = StateHover
		}
		c.Draw(dst, state)
	}
}

func (u *ui) drawStatus(dst *image.RGBA, st toolbarState) {
	th := u.theme
	r := image.Rect(0, u.height-statusHeight, u.width, u.height)
	draw.Draw(dst, r, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	baseline := r.Min.Y + 16
	if u.text.active {
		drawLabel(dst, "text: "+u.text.value+"|   Enter:place  Esc:cancel", image.Pt(4, baseline), th.StatusText)
		return
	}
	drawLabel(dst, statusLine(st), image.Pt(4, baseline), th.StatusText)
	hint := "^C:copy ^S:save Q:quit"
	w := (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(hint).Ceil()
	drawLabel(dst, hint, image.Pt(u.width-w-4, baseline), th.StatusText)
}

func statusLine(st toolbarState) string {
	a := st.attrs
	return fmt.Sprintf("fill=%s stroke=%s width=%g dash=%s opacity=%g  [%d selected, tool %s]",
		a.Fill, a.Stroke, a.StrokeWidth, command.FormatDash(a.StrokeDashArray), a.Opacity, st.selected, st.tool)
}

func (u *ui) drawMessage(dst *image.RGBA) {
	if u.message == "" || !u.now().Before(u.messageUntil) {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(u.theme.Foreground), Face: messageFace}
	wmsg := d.MeasureString(u.message).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	cr := u.canvasRect()
	px := cr.Min.X + (cr.Dx()-wmsg)/2
	py := cr.Max.Y - descent - 16
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	strokeRect(dst, rect, u.theme.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(u.message)
}

func drawLabel(dst *image.RGBA, s string, at image.Point, col color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(at.X, at.Y)}
	d.DrawString(s)
}
