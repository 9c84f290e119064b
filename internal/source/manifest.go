package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ryan-rushton/drawer/internal/launch"
)

func init() {
	Register(Provider{
		Name:        "manifest",
		Description: "YAML app manifests from a directory",
		New:         func(o Options) Source { return NewManifests(o) },
	})
}

// Manifest describes one app in a YAML file.
type Manifest struct {
	ID      string            `yaml:"id"`
	Name    string            `yaml:"name"`
	Icon    string            `yaml:"icon"`
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Env     map[string]string `yaml:"env"`
}

// Validate checks that the manifest can be listed and launched.
func (m Manifest) Validate() error {
	if m.ID == "" {
		return errors.New("manifest missing required field: id")
	}
	if m.Name == "" {
		return errors.New("manifest missing required field: name")
	}
	if m.Command == "" {
		return errors.New("manifest missing required field: command")
	}
	return nil
}

// Manifests serves apps described by *.yaml files in a single directory.
type Manifests struct {
	dir    string
	run    launch.Runner
	logger *slog.Logger
}

func NewManifests(o Options) *Manifests {
	o = o.withDefaults()
	return &Manifests{dir: o.ManifestDir, run: o.Run, logger: o.Logger}
}

func (m *Manifests) Name() string { return "manifest" }

// Query lists valid manifests in file name order. A missing directory means
// no apps; any other directory error is returned.
func (m *Manifests) Query(ctx context.Context) ([]Entry, error) {
	manifests, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(manifests))
	for _, man := range manifests {
		entries = append(entries, Entry{ID: man.ID, Name: man.Name, Icon: man.Icon})
	}
	return entries, nil
}

// Launch runs the manifest's command with its extra environment.
func (m *Manifests) Launch(ctx context.Context, id string) error {
	manifests, err := m.load(ctx)
	if err != nil {
		return err
	}
	for _, man := range manifests {
		if man.ID != id {
			continue
		}
		argv := append([]string{man.Command}, man.Args...)
		m.logger.Info("launching manifest", "id", id, "argv", argv)
		if err := m.run(argv, manifestEnv(man.Env)); err != nil {
			return fmt.Errorf("launch %s: %w", id, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (m *Manifests) load(ctx context.Context) ([]Manifest, error) {
	if m.dir == "" {
		return nil, nil
	}
	files, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}

	seen := make(map[string]struct{})
	var out []Manifest
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext := filepath.Ext(f.Name())
		if f.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(m.dir, f.Name())
		man, err := readManifest(path)
		if err != nil {
			m.logger.Warn("skipping manifest", "path", path, "err", err)
			continue
		}
		if _, dup := seen[man.ID]; dup {
			m.logger.Warn("skipping duplicate manifest id", "path", path, "id", man.ID)
			continue
		}
		seen[man.ID] = struct{}{}
		out = append(out, man)
	}
	return out, nil
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	man.ID = strings.TrimSpace(man.ID)
	if err := man.Validate(); err != nil {
		return Manifest{}, err
	}
	return man, nil
}

// manifestEnv returns nil when there is nothing to add so the child inherits
// the environment untouched.
func manifestEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}
