package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	base := t.TempDir()

	cfg, err := Load(filepath.Join(base, "config.yaml"), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source != DefaultSource {
		t.Errorf("expected source %q, got %q", DefaultSource, cfg.Source)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if !reflect.DeepEqual(cfg.Terminal, DefaultTerminal) {
		t.Errorf("expected default terminal, got %q", cfg.Terminal)
	}
	if cfg.ManifestDir != filepath.Join(base, "apps") {
		t.Errorf("unexpected manifest dir %q", cfg.ManifestDir)
	}
	if cfg.LogFile != filepath.Join(base, "drawer.log") {
		t.Errorf("unexpected log file %q", cfg.LogFile)
	}
	if !cfg.ShouldCloseOnLaunch() {
		t.Error("expected close_on_launch to default to true")
	}
}

func TestLoad_File(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.yaml")
	content := `source: manifest
locale: de_DE.UTF-8
extra_dirs:
  - /opt/apps
  - shared
manifest_dir: /srv/manifests
terminal: ["kitty", "--"]
close_on_launch: false
log_file: logs/d.log
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source != "manifest" || cfg.Locale != "de_DE.UTF-8" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected scalars: %+v", cfg)
	}
	wantDirs := []string{"/opt/apps", filepath.Join(base, "shared")}
	if !reflect.DeepEqual(cfg.ExtraDirs, wantDirs) {
		t.Errorf("extra dirs = %q, want %q", cfg.ExtraDirs, wantDirs)
	}
	if cfg.ManifestDir != "/srv/manifests" {
		t.Errorf("unexpected manifest dir %q", cfg.ManifestDir)
	}
	if !reflect.DeepEqual(cfg.Terminal, []string{"kitty", "--"}) {
		t.Errorf("unexpected terminal %q", cfg.Terminal)
	}
	if cfg.LogFile != filepath.Join(base, "logs", "d.log") {
		t.Errorf("unexpected log file %q", cfg.LogFile)
	}
	if cfg.ShouldCloseOnLaunch() {
		t.Error("expected close_on_launch=false to be honoured")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.yaml")
	if err := os.WriteFile(path, []byte("source: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, base); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolve_Home(t *testing.T) {
	t.Setenv("HOME", "/home/u")

	if got := resolve("/base", "~/apps"); got != "/home/u/apps" {
		t.Errorf("resolve(~/apps) = %q", got)
	}
	if got := resolve("/base", "rel"); got != "/base/rel" {
		t.Errorf("resolve(rel) = %q", got)
	}
	if got := resolve("/base", "/abs"); got != "/abs" {
		t.Errorf("resolve(/abs) = %q", got)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/cfg/drawer" {
		t.Errorf("expected /cfg/drawer, got %q", dir)
	}
}
