package baseset

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"basecat/internal/checksum"
)

func TestPackShortName(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"ABCD", uint32('A') | uint32('B')<<8 | uint32('C')<<16 | uint32('D')<<24},
		{"AB", uint32('A') | uint32('B')<<8},
		{"", 0},
		{"ABCDEFGH", uint32('A') | uint32('B')<<8 | uint32('C')<<16 | uint32('D')<<24},
	}
	for _, tc := range cases {
		if got := PackShortName(tc.in); got != tc.want {
			t.Errorf("PackShortName(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}

func TestFormatShortName(t *testing.T) {
	if got := FormatShortName(PackShortName("OGFX")); got != "OGFX" {
		t.Errorf("FormatShortName = %q", got)
	}
	if got := FormatShortName(PackShortName("AB")); got != "AB" {
		t.Errorf("FormatShortName = %q", got)
	}
	if got := FormatShortName(0x01020304); got != "01020304" {
		t.Errorf("FormatShortName non-printable = %q", got)
	}
}

// TestLoadFromDisk exercises the whole pipeline: a real metadata document
// and payload files verified with the default MD5 verifier.
func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()

	good := []byte("correct payload")
	goodSum := md5.Sum(good)
	if err := os.WriteFile(filepath.Join(dir, "base.dat"), good, 0o644); err != nil {
		t.Fatal(err)
	}

	corrupt := []byte("tampered payload")
	declaredSum := md5.Sum([]byte("what it should have been"))
	if err := os.WriteFile(filepath.Join(dir, "arctic.dat"), corrupt, 0o644); err != nil {
		t.Fatal(err)
	}

	doc := fmt.Sprintf(`[metadata]
name = "Disk Set"
description = "On-disk fixture"
shortname = "DISK"
version = "1"

[files]
base = "base.dat"
arctic = "arctic.dat"

[md5s]
"base.dat" = %q
"arctic.dat" = %q

[origin]
default = "reinstall"
`, hex.EncodeToString(goodSum[:]), hex.EncodeToString(declaredSum[:]))

	path := filepath.Join(dir, "disk.gset")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &Parser{
		Kind: Kind{
			Label:       "graphics",
			FileSlots:   []string{"base", "arctic"},
			ChecksumLen: checksum.MD5Size,
		},
		Verifier: checksum.MD5{},
	}
	set, err := p.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if set.NumValid() != 1 || set.NumFound() != 2 || set.NumMissing() != 0 {
		t.Errorf("counters valid=%d found=%d missing=%d", set.NumValid(), set.NumFound(), set.NumMissing())
	}
	files := set.Files()
	if files[0].Check != checksum.Match {
		t.Errorf("base check = %v", files[0].Check)
	}
	if files[1].Check != checksum.Mismatch {
		t.Errorf("arctic check = %v", files[1].Check)
	}
}
