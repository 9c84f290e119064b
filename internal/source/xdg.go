package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryan-rushton/drawer/internal/launch"
)

func init() {
	Register(Provider{
		Name:        "xdg",
		Description: "Desktop entries from the XDG application directories",
		New:         func(o Options) Source { return NewXDG(o) },
	})
}

// XDG reads freedesktop .desktop entries. Directories are searched in order
// and the first entry seen for an ID wins, so user entries shadow system ones.
type XDG struct {
	dirs     []string
	locales  []string
	desktops []string
	terminal []string
	run      launch.Runner
	logger   *slog.Logger
}

func NewXDG(o Options) *XDG {
	o = o.withDefaults()
	locale := o.Locale
	if locale == "" {
		locale = EnvLocale()
	}
	terminal := o.Terminal
	if len(terminal) == 0 {
		terminal = []string{"xterm", "-e"}
	}
	return &XDG{
		dirs:     ApplicationDirs(o.ExtraDirs),
		locales:  localeCandidates(locale),
		desktops: splitDesktops(os.Getenv("XDG_CURRENT_DESKTOP")),
		terminal: terminal,
		run:      o.Run,
		logger:   o.Logger,
	}
}

func (x *XDG) Name() string { return "xdg" }

// Query returns every launchable entry across the search directories.
func (x *XDG) Query(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := x.walk(ctx, func(id, path string, e desktopEntry) bool {
		if e.launchable(x.desktops) {
			entries = append(entries, Entry{ID: id, Name: e.name(x.locales), Icon: e.Icon})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Launch resolves the entry for id and starts its Exec command.
func (x *XDG) Launch(ctx context.Context, id string) error {
	var (
		found bool
		entry desktopEntry
		file  string
	)
	err := x.walk(ctx, func(entryID, path string, e desktopEntry) bool {
		if entryID != id {
			return true
		}
		found, entry, file = true, e, path
		return false
	})
	if err != nil {
		return err
	}
	if !found || !entry.launchable(x.desktops) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	args, err := launch.SplitExec(entry.Exec)
	if err != nil {
		return fmt.Errorf("launch %s: %w", id, err)
	}
	argv := launch.ExpandFieldCodes(args, launch.Fields{
		Icon: entry.Icon,
		Name: entry.name(x.locales),
		Path: file,
	})
	if entry.Terminal {
		argv = append(append([]string(nil), x.terminal...), argv...)
	}

	x.logger.Info("launching desktop entry", "id", id, "argv", argv)
	if err := x.run(argv, nil); err != nil {
		return fmt.Errorf("launch %s: %w", id, err)
	}
	return nil
}

// walk visits each desktop file once per ID, in search order. visit returns
// false to stop early.
func (x *XDG) walk(ctx context.Context, visit func(id, path string, e desktopEntry) bool) error {
	seen := make(map[string]struct{})
	stop := errors.New("stop")

	for _, dir := range x.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				x.logger.Warn("skipping unreadable path", "path", path, "err", err)
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}

			id := desktopFileID(dir, path)
			if _, dup := seen[id]; dup {
				return nil
			}

			// A broken file does not claim its ID, so a lower-precedence
			// entry with the same ID can still be used.
			e, err := readDesktopEntry(path)
			if err != nil {
				x.logger.Warn("skipping desktop entry", "path", path, "err", err)
				return nil
			}
			seen[id] = struct{}{}
			if !visit(id, path, e) {
				return stop
			}
			return nil
		})
		if errors.Is(err, stop) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
	}
	return nil
}

func readDesktopEntry(path string) (desktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return desktopEntry{}, err
	}
	defer func() { _ = f.Close() }()
	return parseDesktopEntry(f)
}

// desktopFileID derives the desktop file ID: the path relative to the
// applications directory with "/" replaced by "-" and the suffix removed.
func desktopFileID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, ".desktop"))
	return strings.ReplaceAll(rel, "/", "-")
}

// ApplicationDirs returns the applications directories in XDG precedence
// order followed by extra.
func ApplicationDirs(extra []string) []string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	var dirs []string
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return append(dirs, extra...)
}

// EnvLocale returns the message locale from the environment.
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func splitDesktops(v string) []string {
	var out []string
	for _, d := range strings.Split(v, ":") {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
