package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"

	"github.com/example/shineycanvas/internal/appstate"
	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/display"
	"github.com/example/shineycanvas/internal/editor"
)

// interactiveCmd reads commands from stdin, optionally mirroring the page in
// a window.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	window bool
	prompt string
	output string
	execs  commandList
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.Usage = usageFunc(i)
	fs.BoolVar(&i.window, "window", false, "show the page in the editor window while reading commands")
	fs.StringVar(&i.prompt, "prompt", "> ", "prompt printed before each command")
	fs.StringVar(&i.output, "output", "design.png", "file Ctrl+S saves to in the window")
	fs.Var(&i.execs, "e", "command to run before reading stdin (may be repeated)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet { return i.fs }

func (i *interactiveCmd) Template() string { return "interactive.txt" }

func (i *interactiveCmd) Run() error {
	if !i.window {
		session := i.newSession(display.FallbackSize.X, display.FallbackSize.Y)
		if err := runCommands(session, i.stdin, i.stdout, "", i.execs); err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
		return session.REPL(i.stdin, i.stdout, i.stderr, i.prompt)
	}

	size := display.InitialWindowSize("", 0.8)
	var app *appstate.AppState
	session := i.newSession(size.X, size.Y, editor.WithSelectionCleared(func() {
		if app != nil {
			app.SelectionCleared()
		}
	}))
	if err := runCommands(session, i.stdin, i.stdout, "", i.execs); err != nil {
		return err
	}
	app = appstate.New(session,
		appstate.WithTheme(i.activeTheme),
		appstate.WithWindowSize(size),
		appstate.WithOutput(i.output),
	)
	go func() {
		if err := i.readLoop(session, app.NotifyChanged); err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		fmt.Fprintln(i.stdout, "input closed; close the window to quit")
	}()
	app.Run()
	return nil
}

// readLoop runs stdin commands and calls changed after each one so the
// window repaints.
func (i *interactiveCmd) readLoop(s *command.Session, changed func()) error {
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, i.prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		done, err := s.Exec(i.stdout, line)
		if err != nil {
			fmt.Fprintln(i.stderr, err)
			continue
		}
		changed()
		if done {
			break
		}
	}
	return scanner.Err()
}
