package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestManifestsQuery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a-htop.yaml"), "id: htop\nname: htop\nicon: \"📈\"\ncommand: htop\n")
	writeFile(t, filepath.Join(dir, "b-vim.yml"), "id: vim\nname: Vim\ncommand: vim\nargs: [\"-u\", \"NONE\"]\n")
	writeFile(t, filepath.Join(dir, "c-broken.yaml"), "id: [unterminated\n")
	writeFile(t, filepath.Join(dir, "d-noname.yaml"), "id: noname\ncommand: x\n")
	writeFile(t, filepath.Join(dir, "e-dup.yaml"), "id: htop\nname: Other htop\ncommand: htop\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "id: txt\nname: txt\ncommand: txt\n")

	m := NewManifests(Options{ManifestDir: dir})
	entries, err := m.Query(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Entry{
		{ID: "htop", Name: "htop", Icon: "📈"},
		{ID: "vim", Name: "Vim"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %+v, want %+v", entries, want)
	}
}

func TestManifestsQuery_MissingDir(t *testing.T) {
	m := NewManifests(Options{ManifestDir: filepath.Join(t.TempDir(), "nope")})
	entries, err := m.Query(context.Background())
	if err != nil {
		t.Fatalf("expected missing dir to mean no apps, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestManifestsQuery_DirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "")

	if _, err := NewManifests(Options{ManifestDir: path}).Query(context.Background()); err == nil {
		t.Error("expected error when manifest dir is a file")
	}
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr bool
	}{
		{"valid", Manifest{ID: "a", Name: "A", Command: "a"}, false},
		{"missing id", Manifest{Name: "A", Command: "a"}, true},
		{"missing name", Manifest{ID: "a", Command: "a"}, true},
		{"missing command", Manifest{ID: "a", Name: "A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManifestsLaunch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vim.yaml"), "id: vim\nname: Vim\ncommand: vim\nargs: [\"-u\", \"NONE\"]\nenv:\n  TERM: xterm-256color\n")

	rec := &recorder{}
	m := NewManifests(Options{ManifestDir: dir, Run: rec.run})
	if err := m.Launch(context.Background(), "vim"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(rec.argv[0], []string{"vim", "-u", "NONE"}) {
		t.Errorf("unexpected argv %q", rec.argv[0])
	}
	env := rec.env[0]
	if len(env) != len(os.Environ())+1 || env[len(env)-1] != "TERM=xterm-256color" {
		t.Errorf("expected inherited env plus TERM, got tail %q", env[len(env)-1])
	}
}

func TestManifestsLaunch_NoExtraEnvInherits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "htop.yaml"), "id: htop\nname: htop\ncommand: htop\n")

	rec := &recorder{}
	if err := NewManifests(Options{ManifestDir: dir, Run: rec.run}).Launch(context.Background(), "htop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.env[0] != nil {
		t.Errorf("expected nil env, got %d vars", len(rec.env[0]))
	}
}

func TestManifestsLaunch_NotFound(t *testing.T) {
	err := NewManifests(Options{ManifestDir: t.TempDir()}).Launch(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
