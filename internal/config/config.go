// Package config loads the drawer's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "drawer"

// Defaults applied to fields left empty.
const (
	DefaultSource   = "xdg"
	DefaultLogLevel = "info"
)

// DefaultTerminal wraps entries that ask to run in a terminal.
var DefaultTerminal = []string{"xterm", "-e"}

// Config is the on-disk configuration.
type Config struct {
	Source        string   `yaml:"source"`
	Locale        string   `yaml:"locale"`
	ExtraDirs     []string `yaml:"extra_dirs"`
	ManifestDir   string   `yaml:"manifest_dir"`
	Terminal      []string `yaml:"terminal"`
	CloseOnLaunch *bool    `yaml:"close_on_launch"`
	LogFile       string   `yaml:"log_file"`
	LogLevel      string   `yaml:"log_level"`
}

// Dir returns the drawer's config directory, falling back to ~/.config when
// the platform config dir is unknown.
func Dir() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil || cfgDir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("locate config dir: %w", errors.Join(err, herr))
		}
		cfgDir = filepath.Join(home, ".config")
	}
	return filepath.Join(cfgDir, appName), nil
}

// Load reads path. A missing file is not an error and yields the defaults.
// Relative paths inside the file resolve against baseDir.
func Load(path, baseDir string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults(baseDir)
	return &cfg, nil
}

func (c *Config) applyDefaults(baseDir string) {
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if len(c.Terminal) == 0 {
		c.Terminal = append([]string(nil), DefaultTerminal...)
	}
	if c.ManifestDir == "" {
		c.ManifestDir = filepath.Join(baseDir, "apps")
	} else {
		c.ManifestDir = resolve(baseDir, c.ManifestDir)
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(baseDir, appName+".log")
	} else {
		c.LogFile = resolve(baseDir, c.LogFile)
	}
	for i, d := range c.ExtraDirs {
		c.ExtraDirs[i] = resolve(baseDir, d)
	}
}

// ShouldCloseOnLaunch reports whether the drawer exits after a launch.
func (c *Config) ShouldCloseOnLaunch() bool {
	return c.CloseOnLaunch == nil || *c.CloseOnLaunch
}

func resolve(baseDir, p string) string {
	if p == "~" || len(p) > 1 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
