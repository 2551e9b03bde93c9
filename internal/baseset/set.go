package baseset

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"basecat/internal/checksum"
	"basecat/internal/language"
)

// Kind describes one family of base sets: the label used in logs and
// listings, the ordered table of required file slots, and the checksum
// width in bytes.
type Kind struct {
	Label       string
	FileSlots   []string
	ChecksumLen int
}

// NumFiles returns the number of required file slots.
func (k Kind) NumFiles() int { return len(k.FileSlots) }

// File is one required file tracked by a set.
type File struct {
	// Slot is the slot name from the kind's file table.
	Slot string
	// Path is the resolved location on disk. Empty when the slot was
	// declared intentionally empty.
	Path string
	// Checksum is the declared checksum; nil for empty slots.
	Checksum []byte
	// MissingWarning is shown to users when the file is absent.
	MissingWarning string
	// Check records the verification outcome for the file.
	Check checksum.Result
}

// Set is the parsed description of a single base asset set. Identity
// fields never change after a successful parse.
type Set struct {
	kind         Kind
	name         string
	shortName    uint32
	version      int
	fallback     bool
	descriptions map[string]string
	files        []File
	validFiles   int
	foundFiles   int
}

// Kind returns the set's kind.
func (s *Set) Kind() Kind { return s.kind }

// Name returns the full display name, the primary unique key.
func (s *Set) Name() string { return s.name }

// ShortName returns the packed four-character identity code.
func (s *Set) ShortName() uint32 { return s.shortName }

// Version returns the declared version.
func (s *Set) Version() int { return s.version }

// Fallback reports whether the set is only eligible as a fallback.
func (s *Set) Fallback() bool { return s.fallback }

// Description returns the translation best matching pref, falling back to
// the default (untagged) description.
func (s *Set) Description(pref string) string {
	if pref != "" {
		if text, ok := s.descriptions[pref]; ok {
			return text
		}
		if code, ok := language.Pick(pref, s.DescriptionLanguages()); ok {
			return s.descriptions[code]
		}
	}
	return s.descriptions[""]
}

// DescriptionLanguages returns the language codes with translations,
// sorted, excluding the untagged default.
func (s *Set) DescriptionLanguages() []string {
	codes := make([]string, 0, len(s.descriptions))
	for code := range s.descriptions {
		if code != "" {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Files returns a copy of the per-file records in slot order.
func (s *Set) Files() []File {
	files := make([]File, len(s.files))
	copy(files, s.files)
	return files
}

// NumFiles returns the number of required file slots.
func (s *Set) NumFiles() int { return len(s.files) }

// NumValid returns the number of files whose checksum matched.
func (s *Set) NumValid() int { return s.validFiles }

// NumFound returns the number of files present on disk regardless of
// checksum outcome.
func (s *Set) NumFound() int { return s.foundFiles }

// NumMissing returns the number of required files absent from disk.
func (s *Set) NumMissing() int { return len(s.files) - s.foundFiles }

// NumInvalid returns the number of files that did not validate, whether
// corrupt or absent.
func (s *Set) NumInvalid() int { return len(s.files) - s.validFiles }

// PrimaryFile returns the path of the first file slot.
func (s *Set) PrimaryFile() string {
	if len(s.files) == 0 {
		return ""
	}
	return s.files[0].Path
}

// FoldedChecksum XOR-folds all per-file checksums into a single buffer of
// the kind's checksum width, the signature used for content catalog
// matching.
func (s *Set) FoldedChecksum() []byte {
	folded := make([]byte, s.kind.ChecksumLen)
	for _, f := range s.files {
		for i := 0; i < len(f.Checksum) && i < len(folded); i++ {
			folded[i] ^= f.Checksum[i]
		}
	}
	return folded
}

// PackShortName packs at most the first four characters of name into an
// unsigned 32-bit identity code, one byte per character, least-significant
// byte first.
func PackShortName(name string) uint32 {
	var packed uint32
	for i := 0; i < len(name) && i < 4; i++ {
		packed |= uint32(name[i]) << (i * 8)
	}
	return packed
}

// FormatShortName renders a packed identity code for display: the decoded
// characters when all are printable ASCII, otherwise the code in hex.
func FormatShortName(id uint32) string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		c := byte(id >> (i * 8))
		if c == 0 {
			break
		}
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return fmt.Sprintf("%08X", id)
		}
		b.WriteByte(c)
	}
	return b.String()
}
