// Package testsupport builds on-disk base set fixtures for tests.
package testsupport

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SetFixture describes one base set to materialize on disk.
type SetFixture struct {
	Name        string
	ShortName   string
	Description string
	Version     int
	Fallback    bool
	// Files maps slot names to filenames. Every declared file gets a
	// payload and a matching checksum unless listed below.
	Files map[string]string
	// Corrupt filenames get a payload that disagrees with the declared
	// checksum.
	Corrupt []string
	// Missing filenames are declared with a checksum but never written.
	Missing []string
}

// WriteSet writes the fixture's metadata document (named after the set,
// with ext) and payload files into dir, returning the document path.
func WriteSet(t *testing.T, dir, ext string, fixture SetFixture) string {
	t.Helper()

	var b strings.Builder
	fmt.Fprintf(&b, "[metadata]\n")
	fmt.Fprintf(&b, "name = %q\n", fixture.Name)
	fmt.Fprintf(&b, "description = %q\n", fixture.Description)
	fmt.Fprintf(&b, "shortname = %q\n", fixture.ShortName)
	fmt.Fprintf(&b, "version = %q\n", fmt.Sprint(fixture.Version))
	if fixture.Fallback {
		fmt.Fprintf(&b, "fallback = \"1\"\n")
	}

	corrupt := make(map[string]bool, len(fixture.Corrupt))
	for _, name := range fixture.Corrupt {
		corrupt[name] = true
	}
	missing := make(map[string]bool, len(fixture.Missing))
	for _, name := range fixture.Missing {
		missing[name] = true
	}

	fmt.Fprintf(&b, "\n[files]\n")
	for slot, filename := range fixture.Files {
		fmt.Fprintf(&b, "%q = %q\n", slot, filename)
	}

	fmt.Fprintf(&b, "\n[md5s]\n")
	for _, filename := range fixture.Files {
		if filename == "" {
			continue
		}
		payload := []byte(fixture.Name + " payload for " + filename)
		sum := md5.Sum(payload)
		fmt.Fprintf(&b, "%q = %q\n", filename, hex.EncodeToString(sum[:]))

		if missing[filename] {
			continue
		}
		if corrupt[filename] {
			payload = append(payload, " corrupted"...)
		}
		if err := os.WriteFile(filepath.Join(dir, filename), payload, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fmt.Fprintf(&b, "\n[origin]\n")
	fmt.Fprintf(&b, "default = %q\n", "Reinstall "+fixture.Name)

	docName := strings.ToLower(strings.ReplaceAll(fixture.Name, " ", "-")) + ext
	docPath := filepath.Join(dir, docName)
	if err := os.WriteFile(docPath, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return docPath
}
