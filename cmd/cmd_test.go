package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ryan-rushton/drawer/internal/apps"
)

// manifestConfig writes a config that points the manifest source at a temp
// dir holding a few apps, and returns the config path.
func manifestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	appsDir := filepath.Join(dir, "apps")
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"zeta.yaml":  "id: com.z\nname: Zeta\ncommand: /nonexistent/zeta\n",
		"alpha.yaml": "id: com.a\nname: alpha\ncommand: /nonexistent/alpha\n",
		"beta.yaml":  "id: com.b\nname: Beta\ncommand: /nonexistent/beta\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(appsDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("source: manifest\nlog_file: drawer.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath, sourceName, localeFlag = "", "", ""
		listQuery, listJSON = "", false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList_SortedTabSeparated(t *testing.T) {
	cfg := manifestConfig(t)

	out, err := run(t, "list", "--config", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "alpha\tcom.a\nBeta\tcom.b\nZeta\tcom.z\n"
	if out != want {
		t.Errorf("list output = %q, want %q", out, want)
	}
}

func TestList_QueryJSON(t *testing.T) {
	cfg := manifestConfig(t)

	out, err := run(t, "list", "--config", cfg, "--query", "ZETA", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []apps.Record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].PackageID != "com.z" {
		t.Errorf("expected only com.z, got %+v", got)
	}
}

func TestList_NoMatchJSONIsEmptyArray(t *testing.T) {
	cfg := manifestConfig(t)

	out, err := run(t, "list", "--config", cfg, "-q", "nothing", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected [], got %q", out)
	}
}

func TestLaunch_UnknownID(t *testing.T) {
	cfg := manifestConfig(t)

	if _, err := run(t, "launch", "--config", cfg, "com.missing"); err == nil {
		t.Error("expected error launching an unknown ID")
	}
}

func TestUnknownSource(t *testing.T) {
	cfg := manifestConfig(t)

	_, err := run(t, "list", "--config", cfg, "--source", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown source") {
		t.Errorf("expected unknown source error, got %v", err)
	}
}

func TestSources(t *testing.T) {
	out, err := run(t, "sources")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "xdg") || !strings.Contains(out, "manifest") {
		t.Errorf("expected both sources listed, got %q", out)
	}
}
