package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shineycanvas/internal/appstate"
	"github.com/example/shineycanvas/internal/display"
	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/server"
)

// serveCmd exposes one session over HTTP.
type serveCmd struct {
	*root
	fs      *flag.FlagSet
	addr    string
	window  bool
	quiet   bool
	timeout time.Duration
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	s := &serveCmd{root: r.subcommand("serve"), fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.addr, "addr", "127.0.0.1:8080", "listen address")
	fs.BoolVar(&s.window, "window", false, "show the page in the editor window while serving")
	fs.BoolVar(&s.quiet, "quiet", false, "disable the request log")
	fs.DurationVar(&s.timeout, "timeout", 10*time.Second, "read and write timeout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if s.addr == "" {
		return nil, fmt.Errorf("-addr is required")
	}
	return s, nil
}

func (s *serveCmd) FlagSet() *flag.FlagSet { return s.fs }

func (s *serveCmd) Template() string { return "serve.txt" }

func (s *serveCmd) Run() error {
	size := display.FallbackSize
	if s.window {
		size = display.InitialWindowSize("", 0.8)
	}
	var app *appstate.AppState
	session := s.newSession(size.X, size.Y, editor.WithSelectionCleared(func() {
		if app != nil {
			app.SelectionCleared()
		}
	}))
	opts := []server.Option{server.WithAccessLog(!s.quiet), server.WithTimeout(s.timeout)}
	if s.window {
		app = appstate.New(session, appstate.WithTheme(s.activeTheme), appstate.WithWindowSize(size))
		opts = append(opts, server.WithOnChange(app.NotifyChanged))
	}
	srv := server.New(session, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(s.addr) }()

	if s.window {
		// The window owns the main goroutine; closing it stops the server.
		app.Run()
	} else {
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
