package main

import (
	"flag"
	"fmt"
	"unicode"

	"github.com/example/shineycanvas/internal/appstate"
	"github.com/example/shineycanvas/internal/theme"
)

type shapesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseShapesCmd(args []string, r *root) (*shapesCmd, error) {
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	cmd := &shapesCmd{root: r.subcommand("shapes"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *shapesCmd) Run() error {
	fmt.Fprintln(c.stdout, "shapes (window key, command):")
	for _, s := range appstate.ShapeShortcuts() {
		fmt.Fprintf(c.stdout, "  %c  %-18s add %s\n", unicode.ToUpper(s.Key), s.Label, s.Kind)
	}
	fmt.Fprintf(c.stdout, "  X  %-18s add text <words...>\n", "Text")
	return nil
}

func (c *shapesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *shapesCmd) Template() string {
	return "shapes.txt"
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := appstate.Palette()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "palette colors (any CSS colour name or #rrggbb also works):")
	for i, p := range palette {
		fmt.Fprintf(c.stdout, "  %2d  %-8s %s\n", i, p.Name, theme.Hex(p.Color))
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}
