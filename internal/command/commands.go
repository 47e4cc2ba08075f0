package command

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/scene"
)

type handler func(s *Session, out io.Writer, cmd Command) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"add":      runAdd,
		"fill":     runFill,
		"stroke":   runStroke,
		"width":    runWidth,
		"dash":     runDash,
		"opacity":  runOpacity,
		"forward":  runForward,
		"backward": runBackward,
		"select":   runSelect,
		"pick":     runPick,
		"get":      runGet,
		"list":     runList,
		"resize":   runResize,
		"save":     runSave,
		"copy":     runCopy,
		"help":     runHelp,
	}
}

// Help lists the command forms, one per line.
const Help = `add <circle|square|square-full|triangle|inverted-triangle|diamond>
add text <words...>
fill <color>
stroke <color>
width <n>
dash <n,n,...|none>
opacity <0..1>
forward
backward
select all|none|<index...>
pick <x> <y>
get fill|stroke|width|dash|opacity
list
resize <width> <height>
save <file.png>
copy
exit`

func runHelp(_ *Session, out io.Writer, _ Command) error {
	_, err := fmt.Fprintln(out, Help)
	return err
}

func runAdd(s *Session, out io.Writer, cmd Command) error {
	if len(cmd.Args) < 1 {
		return usagef("add <shape> | add text <words...>")
	}
	h := s.ed.Handle()
	kind := strings.ToLower(cmd.Args[0])
	var o *scene.Object
	if kind == "text" {
		if len(cmd.Args) < 2 {
			return usagef("add text <words...>")
		}
		o = h.AddText(strings.Join(cmd.Args[1:], " "))
	} else {
		if len(cmd.Args) != 1 {
			return usagef("add <shape>")
		}
		if !slices.Contains(editor.ShapeKinds(), editor.ShapeKind(kind)) {
			return fmt.Errorf("unknown shape %q", kind)
		}
		o = h.AddShape(editor.ShapeKind(kind))
	}
	if o == nil {
		return fmt.Errorf("editor not initialised")
	}
	s.canvas.RenderAll()
	_, err := fmt.Fprintf(out, "added %s %s\n", kind, o.ID)
	return err
}

func runFill(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "fill <color>"); err != nil {
		return err
	}
	v, err := parseColorArg(cmd.Args[0])
	if err != nil {
		return err
	}
	s.ed.Handle().ChangeFillColor(v)
	return nil
}

func runStroke(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "stroke <color>"); err != nil {
		return err
	}
	v, err := parseColorArg(cmd.Args[0])
	if err != nil {
		return err
	}
	s.ed.Handle().ChangeStrokeColor(v)
	return nil
}

func runWidth(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "width <n>"); err != nil {
		return err
	}
	v, err := parseNumber(cmd.Args[0], "width")
	if err != nil {
		return err
	}
	s.ed.Handle().ChangeStrokeWidth(v)
	return nil
}

func runDash(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "dash <n,n,...|none>"); err != nil {
		return err
	}
	v, err := ParseDash(cmd.Args[0])
	if err != nil {
		return err
	}
	s.ed.Handle().ChangeStrokeDashArray(v)
	return nil
}

func runOpacity(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "opacity <0..1>"); err != nil {
		return err
	}
	v, err := parseNumber(cmd.Args[0], "opacity")
	if err != nil {
		return err
	}
	s.ed.Handle().ChangeOpacity(v)
	return nil
}

func runForward(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 0, "forward"); err != nil {
		return err
	}
	s.ed.Handle().SendForwards()
	return nil
}

func runBackward(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 0, "backward"); err != nil {
		return err
	}
	s.ed.Handle().SendToBack()
	return nil
}

func runSelect(s *Session, _ io.Writer, cmd Command) error {
	if len(cmd.Args) == 0 {
		return usagef("select all|none|<index...>")
	}
	objects := s.canvas.Objects()
	switch strings.ToLower(cmd.Args[0]) {
	case "none":
		s.canvas.DiscardActiveObject()
	case "all":
		s.canvas.SetActiveObjects(objects)
	default:
		picked := make([]*scene.Object, 0, len(cmd.Args))
		for _, a := range cmd.Args {
			i, err := strconv.Atoi(a)
			if err != nil || i < 0 || i >= len(objects) {
				return fmt.Errorf("invalid object index %q", a)
			}
			if !objects[i].Selectable {
				return fmt.Errorf("object %d cannot be selected", i)
			}
			picked = append(picked, objects[i])
		}
		s.canvas.SetActiveObjects(picked)
	}
	s.canvas.RenderAll()
	return nil
}

// runPick selects the front-most selectable object under a surface point,
// or clears the selection when there is none.
func runPick(s *Session, out io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 2, "pick <x> <y>"); err != nil {
		return err
	}
	x, err := parseNumber(cmd.Args[0], "x")
	if err != nil {
		return err
	}
	y, err := parseNumber(cmd.Args[1], "y")
	if err != nil {
		return err
	}
	o := s.canvas.FindTarget(scene.Point{X: x, Y: y})
	s.canvas.SetActiveObject(o)
	s.canvas.RenderAll()
	if o == nil {
		_, err = fmt.Fprintln(out, "picked nothing")
		return err
	}
	_, err = fmt.Fprintf(out, "picked %d %s\n", s.canvas.IndexOf(o), o.Kind)
	return err
}

func runGet(s *Session, out io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "get fill|stroke|width|dash|opacity"); err != nil {
		return err
	}
	h := s.ed.Handle()
	var v string
	switch strings.ToLower(cmd.Args[0]) {
	case "fill":
		v = h.GetActiveFillColor()
	case "stroke":
		v = h.GetActiveStrokeColor()
	case "width":
		v = strconv.FormatFloat(h.GetActiveStrokeWidth(), 'g', -1, 64)
	case "dash":
		v = FormatDash(h.GetActiveStrokeDashArray())
	case "opacity":
		v = strconv.FormatFloat(h.GetActiveOpacity(), 'g', -1, 64)
	default:
		return fmt.Errorf("unknown property %q", cmd.Args[0])
	}
	_, err := fmt.Fprintln(out, v)
	return err
}

func runList(s *Session, out io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 0, "list"); err != nil {
		return err
	}
	for _, o := range s.state().Objects {
		mark := " "
		if o.Selected {
			mark = "*"
		}
		name := o.Name
		if name == "" {
			name = "-"
		}
		if _, err := fmt.Fprintf(out, "%s%d\t%s\t%s\tfill=%s stroke=%s width=%g dash=%s opacity=%g\n",
			mark, o.Index, o.Kind, name, o.Fill, o.Stroke, o.StrokeWidth, FormatDash(o.StrokeDashArray), o.Opacity); err != nil {
			return err
		}
	}
	return nil
}

func runResize(s *Session, _ io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 2, "resize <width> <height>"); err != nil {
		return err
	}
	w, err := strconv.Atoi(cmd.Args[0])
	if err != nil || w <= 0 {
		return fmt.Errorf("invalid width %q", cmd.Args[0])
	}
	h, err := strconv.Atoi(cmd.Args[1])
	if err != nil || h <= 0 {
		return fmt.Errorf("invalid height %q", cmd.Args[1])
	}
	s.ed.Resize(w, h)
	return nil
}

func runSave(s *Session, out io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 1, "save <file.png>"); err != nil {
		return err
	}
	path, err := s.save(cmd.Args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "saved %s\n", path)
	return err
}

func runCopy(s *Session, out io.Writer, cmd Command) error {
	if err := expectArgs(cmd, 0, "copy"); err != nil {
		return err
	}
	if err := s.copy(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "copied page to clipboard")
	return err
}
