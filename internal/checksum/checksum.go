// Package checksum defines the pluggable file-verification capability used
// when validating base set contents, plus the default MD5 implementation.
package checksum

import (
	"bytes"
	"crypto/md5"
	"io"
	"os"
)

// MD5Size is the checksum width of the default verifier, in bytes.
const MD5Size = md5.Size

// Result is the outcome of checking one file. A file that exists but does
// not hash to the declared value is distinct from a file that is absent;
// visibility and listing logic depend on that distinction.
type Result int

const (
	// Match means the file exists and its checksum matches.
	Match Result = iota
	// Mismatch means the file exists but its checksum differs.
	Mismatch
	// NoFile means the file could not be read at all.
	NoFile
)

func (r Result) String() string {
	switch r {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case NoFile:
		return "missing"
	default:
		return "unknown"
	}
}

// Verifier checks a file on disk against its declared checksum.
type Verifier interface {
	Verify(path string, want []byte) Result
}

// Func adapts a plain function to the Verifier interface.
type Func func(path string, want []byte) Result

// Verify implements Verifier.
func (f Func) Verify(path string, want []byte) Result { return f(path, want) }

// MD5 is the default Verifier, hashing files with crypto/md5.
type MD5 struct{}

// Verify implements Verifier.
func (MD5) Verify(path string, want []byte) Result {
	f, err := os.Open(path)
	if err != nil {
		return NoFile
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return NoFile
	}
	if bytes.Equal(h.Sum(nil), want) {
		return Match
	}
	return Mismatch
}
