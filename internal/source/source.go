package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ryan-rushton/drawer/internal/launch"
)

var (
	// ErrNotFound is returned by Launch when no app has the requested ID.
	ErrNotFound = errors.New("app not found")

	// ErrUnknownSource is returned by Open for an unregistered source name.
	ErrUnknownSource = errors.New("unknown source")
)

// Entry is one launchable application as reported by a source.
type Entry struct {
	ID   string
	Name string
	Icon string
}

// Source enumerates launchable applications and launches them by ID.
type Source interface {
	Name() string
	Query(ctx context.Context) ([]Entry, error)
	Launch(ctx context.Context, id string) error
}

// Options configures a source when it is opened.
type Options struct {
	Locale      string
	ExtraDirs   []string
	ManifestDir string
	Terminal    []string
	Logger      *slog.Logger

	// Run starts launched commands. Defaults to launch.Start.
	Run launch.Runner
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Run == nil {
		o.Run = launch.Start
	}
	return o
}

// Provider describes a source that can be selected by name.
type Provider struct {
	Name        string
	Description string
	New         func(Options) Source
}

var providers []Provider

// Register adds a provider to the registry.
func Register(p Provider) {
	providers = append(providers, p)
}

// All returns all registered providers sorted by name.
func All() []Provider {
	out := append([]Provider(nil), providers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the provider with the given name, or nil if not found.
func Get(name string) *Provider {
	for i := range providers {
		if providers[i].Name == name {
			return &providers[i]
		}
	}
	return nil
}

// Open builds the named source.
func Open(name string, opts Options) (Source, error) {
	p := Get(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return p.New(opts.withDefaults()), nil
}
