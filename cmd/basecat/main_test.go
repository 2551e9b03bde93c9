package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"basecat/internal/testsupport"
)

// writeTestConfig points basecat at a scratch search dir and state dir,
// returning the config path and the sets dir.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	setsDir := filepath.Join(dir, "sets")
	if err := os.MkdirAll(setsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := fmt.Sprintf(`
[paths]
search_dirs = [%q]
state_dir = %q

[kinds.graphics]
files = ["base", "arctic"]
extension = ".gset"
`, setsDir, filepath.Join(dir, "state"))

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, setsDir
}

func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", configPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestScanAndList(t *testing.T) {
	configPath, setsDir := writeTestConfig(t)

	testsupport.WriteSet(t, setsDir, ".gset", testsupport.SetFixture{
		Name:        "Alpha Graphics",
		ShortName:   "ALFA",
		Description: "complete fixture",
		Version:     2,
		Files:       map[string]string{"base": "alpha-base.dat", "arctic": "alpha-arctic.dat"},
	})
	testsupport.WriteSet(t, setsDir, ".gset", testsupport.SetFixture{
		Name:        "Holey Graphics",
		ShortName:   "HOLE",
		Description: "missing a file",
		Version:     1,
		Files:       map[string]string{"base": "holey-base.dat", "arctic": "holey-arctic.dat"},
		Missing:     []string{"holey-arctic.dat"},
	})

	out, err := runCommand(t, configPath, "scan", "--kind", "graphics")
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}
	if !strings.Contains(out, "graphics") {
		t.Errorf("scan output missing kind:\n%s", out)
	}

	out, err = runCommand(t, configPath, "list", "--kind", "graphics", "--plain")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "List of graphics sets:") {
		t.Errorf("list header missing:\n%s", out)
	}
	if !strings.Contains(out, "Alpha Graphics: complete fixture") {
		t.Errorf("complete set missing:\n%s", out)
	}
	if !strings.Contains(out, "Holey Graphics: missing a file (unusable: 1 missing file)") {
		t.Errorf("unusable annotation missing:\n%s", out)
	}
}

func TestSelectAndLookup(t *testing.T) {
	configPath, setsDir := writeTestConfig(t)

	testsupport.WriteSet(t, setsDir, ".gset", testsupport.SetFixture{
		Name:        "Alpha Graphics",
		ShortName:   "ALFA",
		Description: "complete fixture",
		Version:     2,
		Files:       map[string]string{"base": "alpha-base.dat", "arctic": "alpha-arctic.dat"},
	})

	out, err := runCommand(t, configPath, "select", "Alpha Graphics", "--kind", "graphics")
	if err != nil {
		t.Fatalf("select: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Selected graphics set: Alpha Graphics (version 2)") {
		t.Errorf("select output:\n%s", out)
	}

	if out, err := runCommand(t, configPath, "select", "Nope", "--kind", "graphics"); err == nil {
		t.Fatalf("selecting unknown set succeeded:\n%s", out)
	}

	out, err = runCommand(t, configPath, "lookup", "ALFA", "--kind", "graphics")
	if err != nil {
		t.Fatalf("lookup: %v\n%s", err, out)
	}
	if !strings.Contains(out, "alpha-base.dat") {
		t.Errorf("lookup should print the primary file:\n%s", out)
	}

	if out, err := runCommand(t, configPath, "lookup", "GONE", "--kind", "graphics"); err == nil {
		t.Fatalf("lookup of unknown id succeeded:\n%s", out)
	}
}

func TestShowCommand(t *testing.T) {
	configPath, setsDir := writeTestConfig(t)

	testsupport.WriteSet(t, setsDir, ".gset", testsupport.SetFixture{
		Name:        "Corrupt Graphics",
		ShortName:   "CRPT",
		Description: "one bad file",
		Version:     3,
		Files:       map[string]string{"base": "c-base.dat", "arctic": "c-arctic.dat"},
		Corrupt:     []string{"c-arctic.dat"},
	})

	out, err := runCommand(t, configPath, "show", "Corrupt Graphics", "--kind", "graphics")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	for _, want := range []string{"Corrupt Graphics", "CRPT", "1 corrupt file", "mismatch"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryAfterScan(t *testing.T) {
	configPath, setsDir := writeTestConfig(t)
	testsupport.WriteSet(t, setsDir, ".gset", testsupport.SetFixture{
		Name:        "Alpha Graphics",
		ShortName:   "ALFA",
		Description: "complete fixture",
		Version:     1,
		Files:       map[string]string{"base": "a.dat", "arctic": "b.dat"},
	})

	if out, err := runCommand(t, configPath, "scan", "--kind", "graphics"); err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}

	out, err := runCommand(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "graphics") {
		t.Errorf("history missing scan row:\n%s", out)
	}
}

func TestParseContentID(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"OGFX", uint32('O') | uint32('G')<<8 | uint32('F')<<16 | uint32('X')<<24, true},
		{"255", 255, true},
		{"0x4F474658", 0x4F474658, true},
		{"AB", uint32('A') | uint32('B')<<8, true},
		{"toolong", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseContentID(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("parseContentID(%q) err = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseContentID(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}
