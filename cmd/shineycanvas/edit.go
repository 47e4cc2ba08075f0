package main

import (
	"flag"
	"fmt"

	"github.com/example/shineycanvas/internal/appstate"
	"github.com/example/shineycanvas/internal/display"
	"github.com/example/shineycanvas/internal/editor"
)

// editCmd opens the editor window.
type editCmd struct {
	*root
	fs       *flag.FlagSet
	output   string
	monitor  string
	fraction float64
	script   string
	execs    commandList
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.output, "output", "design.png", "file Ctrl+S saves to, relative to save_dir")
	fs.StringVar(&e.monitor, "monitor", "", "monitor to size the window for (index, name or primary)")
	fs.Float64Var(&e.fraction, "fraction", 0.8, "share of the monitor the window covers")
	fs.StringVar(&e.script, "script", "", "command file to run before the window opens")
	fs.Var(&e.execs, "e", "command to run before the window opens (may be repeated)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func (e *editCmd) Template() string { return "edit.txt" }

func (e *editCmd) Run() error {
	size := display.InitialWindowSize(e.monitor, e.fraction)
	var app *appstate.AppState
	session := e.newSession(size.X, size.Y, editor.WithSelectionCleared(func() {
		if app != nil {
			app.SelectionCleared()
		}
	}))
	if err := runCommands(session, e.stdin, e.stdout, e.script, e.execs); err != nil {
		return err
	}
	app = appstate.New(session,
		appstate.WithTheme(e.activeTheme),
		appstate.WithWindowSize(size),
		appstate.WithOutput(e.output),
		appstate.WithTitle(fmt.Sprintf("ShineyCanvas - %s", e.output)),
	)
	app.Run()
	return nil
}
