package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/shineycanvas/internal/clipboard"
	"github.com/example/shineycanvas/internal/command"
	"github.com/example/shineycanvas/internal/config"
	"github.com/example/shineycanvas/internal/editor"
	"github.com/example/shineycanvas/internal/notify"
	"github.com/example/shineycanvas/internal/scene"
	"github.com/example/shineycanvas/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	verbose     bool
	activeTheme *theme.Theme
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	sub := *r
	sub.program = strings.TrimSpace(r.program + " " + name)
	return &sub
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) Template() string {
	return "root.txt"
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("shineycanvas", flag.ExitOnError),
		program:  "shineycanvas",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.NewLoader().Available(), ", ")+")")
	r.fs.BoolVar(&r.verbose, "v", false, "log editor activity to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.verbose {
		scene.SetLogger(slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "serve":
		cmd, err = parseServeCmd(subArgs, r)
	case "shapes":
		cmd, err = parseShapesCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the window theme: flag, then SHINEYCANVAS_THEME, then
// the config file. Themes defined in the config win over files of the same
// name.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SHINEYCANVAS_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// newSession builds an editor bound to a fresh canvas of the given size and
// wraps it in a command session wired to the clipboard and notifications.
func (r *root) newSession(width, height int, opts ...editor.Option) *command.Session {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	opts = append([]editor.Option{
		editor.WithDefaults(cfg.Defaults),
		editor.WithWorkspace(cfg.Workspace),
		editor.WithControlStyle(cfg.Controls),
	}, opts...)
	ed := editor.New(opts...)
	c := scene.NewCanvas(0, 0)
	ed.Init(c, editor.FixedContainer{Width: width, Height: height})
	return command.New(ed, c,
		command.WithSaveDir(cfg.SaveDir),
		command.WithClipboard(clipboard.WriteImage),
		command.WithSaveHook(r.notifySave),
		command.WithCopyHook(r.notifyCopy),
	)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail, img)
}
