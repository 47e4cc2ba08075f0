package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/shineycanvas/internal/scene"
)

var (
	// ErrUnknownCommand is returned for a command name Exec does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage wraps argument errors. The message carries the expected form.
	ErrUsage = errors.New("usage")
)

// Command is one parsed input line.
type Command struct {
	Name string
	Args []string
}

// Parse splits line into a command name and its arguments. Blank lines and
// lines starting with # yield a zero Command.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}
	}
	fields := strings.Fields(line)
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

func expectArgs(cmd Command, n int, form string) error {
	if len(cmd.Args) != n {
		return usagef("%s", form)
	}
	return nil
}

// parseColorArg checks that s is a colour the renderer understands. The
// original spelling is kept so reads echo what was written.
func parseColorArg(s string) (string, error) {
	if _, err := scene.ParseColor(s); err != nil {
		return "", err
	}
	return s, nil
}

func parseNumber(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return v, nil
}

// ParseDash reads a comma separated dash pattern. "none" and the empty
// string mean a solid stroke.
func ParseDash(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := parseNumber(strings.TrimSpace(p), "dash length")
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatDash is the inverse of ParseDash.
func FormatDash(dash []float64) string {
	if len(dash) == 0 {
		return "none"
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = strconv.FormatFloat(d, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
