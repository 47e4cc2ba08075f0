package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/editor"
)

// drawCmd applies commands to a new page without opening a window and saves
// the result.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	output      string
	toClipboard bool
	script      string
	execs       commandList
	pageWidth   float64
	pageHeight  float64
	commands    []string
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.output, "output", "design.png", "output file path, relative to save_dir")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the page to the clipboard as well")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the page to the clipboard as well (alias)")
	fs.StringVar(&d.script, "script", "", "file of commands, one per line; - reads stdin")
	fs.Var(&d.execs, "e", "command to run (may be repeated)")
	fs.Float64Var(&d.pageWidth, "page-width", 0, "page width, overriding [workspace] width")
	fs.Float64Var(&d.pageHeight, "page-height", 0, "page height, overriding [workspace] height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	d.commands = fs.Args()
	if d.script == "" && len(d.execs) == 0 && len(d.commands) == 0 {
		return nil, &UsageError{of: d}
	}
	if d.output == "" && !d.toClipboard {
		return nil, fmt.Errorf("nothing to do: -output is empty and -to-clipboard is not set")
	}
	if d.pageWidth < 0 || d.pageHeight < 0 {
		return nil, fmt.Errorf("page size must be positive")
	}
	return d, nil
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

func (d *drawCmd) Template() string { return "draw.txt" }

func (d *drawCmd) Run() error {
	ws := editor.DefaultWorkspaceOptions()
	if d.config != nil {
		ws = d.config.Workspace
	}
	if d.pageWidth > 0 {
		ws.Width = d.pageWidth
	}
	if d.pageHeight > 0 {
		ws.Height = d.pageHeight
	}
	session := d.newSession(int(ws.Width), int(ws.Height), editor.WithWorkspace(ws))
	if err := runCommands(session, d.stdin, d.stdout, d.script, append(d.execs, d.commands...)); err != nil {
		return err
	}
	if d.output != "" {
		path, err := session.Save(d.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.stdout, "saved %s\n", path)
	}
	if d.toClipboard {
		if err := session.Copy(); err != nil {
			return err
		}
		fmt.Fprintln(d.stdout, "copied page to clipboard")
	}
	return nil
}

// runCommands runs the lines of script, then every entry of lines. A script
// of "-" is read from in.
func runCommands(s *command.Session, in io.Reader, out io.Writer, script string, lines []string) error {
	if script != "" {
		var r io.Reader
		if script == "-" {
			r = in
		} else {
			f, err := os.Open(script)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := s.Script(r, out); err != nil {
			return fmt.Errorf("%s: %w", script, err)
		}
	}
	for _, line := range lines {
		if _, err := s.Exec(out, line); err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
	}
	return nil
}
