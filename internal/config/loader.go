package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvPath names an environment variable that points at a config file. It is
// tried after the build-time override.
const EnvPath = "SHINEYCANVAS_CONFIG"

// Loader finds and reads the rc file.
type Loader struct {
	Version      string // "dev" also looks for ./.shineycanvasrc
	OverridePath string // set at build time
	Home         string // defaults to os.UserHomeDir
	WorkDir      string // defaults to os.Getwd
}

// NewLoader creates a Loader for the given build.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Candidates lists the config paths in lookup order. The first one that
// exists wins.
func (l *Loader) Candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if p := os.Getenv(EnvPath); p != "" {
		paths = append(paths, p)
	}
	if l.Version == "dev" {
		wd := l.WorkDir
		if wd == "" {
			wd, _ = os.Getwd()
		}
		if wd != "" {
			paths = append(paths, filepath.Join(wd, ".shineycanvasrc"))
		}
	}
	if dir := l.configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "shineycanvas.rc"))
	}
	return paths
}

func (l *Loader) configDir() string {
	home := l.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "shineycanvas")
}

// GetConfigPath returns the first existing candidate, or "" when there is
// none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads the config file in use. Without one it returns the defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is where "config save" writes when no config file exists yet.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "shineycanvas", "config.rc"), nil
}
