package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// PathEnv lists extra theme directories, separated like PATH.
const PathEnv = "SHINEYCANVAS_THEME_PATH"

// ErrNotFound is returned when no directory holds the requested theme.
var ErrNotFound = errors.New("theme not found")

// Loader resolves theme names against the embedded set and then Dirs in
// order. The first match wins.
type Loader struct {
	Dirs []string
}

// NewLoader searches $SHINEYCANVAS_THEME_PATH, the user config dir and the
// shared data dir.
func NewLoader() *Loader {
	var dirs []string
	if v := os.Getenv(PathEnv); v != "" {
		dirs = append(dirs, filepath.SplitList(v)...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "shineycanvas", "themes"))
	}
	dirs = append(dirs, "/usr/share/shineycanvas/themes")
	return &Loader{Dirs: dirs}
}

// Load returns the theme called name. A name that is an existing file is
// parsed directly. "" and "default" give the light theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || name == "default" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(name)
	}
	file := name
	if !strings.HasSuffix(file, ".theme") {
		file += ".theme"
	}
	if f, err := EmbeddedThemes.Open("defaults/" + file); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range l.Dirs {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Available lists embedded themes followed by those found in Dirs, without
// duplicates.
func (l *Loader) Available() []string {
	names := Names()
	for _, dir := range l.Dirs {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.theme"))
		for _, m := range matches {
			n := strings.TrimSuffix(filepath.Base(m), ".theme")
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	return names
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
