package baseset

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"basecat/internal/checksum"
	"basecat/internal/logging"
	"basecat/internal/metadoc"
)

// Parser turns metadata documents into Sets for one kind.
type Parser struct {
	// Kind supplies the slot table and checksum width.
	Kind Kind
	// Verifier checks each declared file. Required.
	Verifier checksum.Verifier
	// AllowEmptyFiles accepts slots declared with an empty filename; such
	// slots count as valid and found without verification.
	AllowEmptyFiles bool
	// Logger receives per-file integrity notes. Optional.
	Logger *slog.Logger
}

// Load reads the metadata document at path and parses it. Files are
// resolved relative to the document's directory.
func (p *Parser) Load(path string) (*Set, error) {
	doc, err := metadoc.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(doc, filepath.Dir(path), path)
}

// Parse builds a Set from doc. basePath anchors relative filenames and
// source names the document in errors and logs. Any missing required
// field, filename, or checksum entry rejects the whole document; corrupt
// or absent files on disk do not, they only affect the counters.
func (p *Parser) Parse(doc metadoc.Document, basePath, source string) (*Set, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	set := &Set{
		kind:         p.Kind,
		descriptions: make(map[string]string),
	}

	metadata, ok := doc.Section("metadata")
	if !ok {
		return nil, fmt.Errorf("base %s set %s: metadata section missing", p.Kind.Label, source)
	}

	name, err := p.fetchMetadata(metadata, "name", source)
	if err != nil {
		return nil, err
	}
	set.name = name

	description, err := p.fetchMetadata(metadata, "description", source)
	if err != nil {
		return nil, err
	}
	set.descriptions[""] = description

	// Translations live alongside the default under description.<code>.
	for _, key := range metadata.Keys() {
		code, ok := strings.CutPrefix(key, "description.")
		if !ok {
			continue
		}
		value, _ := metadata.Find(key)
		set.descriptions[code] = value
	}

	shortName, err := p.fetchMetadata(metadata, "shortname", source)
	if err != nil {
		return nil, err
	}
	set.shortName = PackShortName(shortName)

	version, err := p.fetchMetadata(metadata, "version", source)
	if err != nil {
		return nil, err
	}
	set.version = leadingInt(version)

	// fallback is optional; any value other than "0" or "false" enables
	// it, including values that fail to parse as booleans.
	if value, ok := metadata.Find("fallback"); ok {
		set.fallback = value != "0" && value != "false"
	}

	files := sectionOrEmpty(doc, "files")
	md5s := sectionOrEmpty(doc, "md5s")
	origin := sectionOrEmpty(doc, "origin")

	set.files = make([]File, 0, len(p.Kind.FileSlots))
	for _, slot := range p.Kind.FileSlots {
		filename, ok := files.Find(slot)
		if !ok || (filename == "" && !p.AllowEmptyFiles) {
			return nil, fmt.Errorf("base %s set %s: no file for slot %s", p.Kind.Label, source, slot)
		}

		if filename == "" {
			// A slot declared empty needs no file and counts as valid.
			set.files = append(set.files, File{Slot: slot, Check: checksum.Match})
			set.validFiles++
			set.foundFiles++
			continue
		}

		file := File{Slot: slot, Path: filepath.Join(basePath, filename)}

		sum, ok := md5s.Find(filename)
		if !ok || sum == "" {
			return nil, fmt.Errorf("base %s set %s: no checksum for %s", p.Kind.Label, source, filename)
		}
		file.Checksum, err = parseChecksum(sum, p.Kind.ChecksumLen)
		if err != nil {
			return nil, fmt.Errorf("base %s set %s: checksum for %s: %w", p.Kind.Label, source, filename, err)
		}

		warning, ok := origin.Find(filename)
		if !ok {
			warning, ok = origin.Find("default")
		}
		if !ok {
			logger.Debug("no origin warning for file",
				logging.String("file", filename),
				logging.String("source", source),
			)
		}
		file.MissingWarning = warning

		file.Check = p.Verifier.Verify(file.Path, file.Checksum)
		switch file.Check {
		case checksum.Match:
			set.validFiles++
			set.foundFiles++
		case checksum.Mismatch:
			logger.Warn("checksum mismatch",
				logging.String("file", file.Path),
				logging.String("source", source),
			)
			set.foundFiles++
		case checksum.NoFile:
			logger.Info("declared file missing",
				logging.String("file", file.Path),
				logging.String("source", source),
			)
		}

		set.files = append(set.files, file)
	}

	return set, nil
}

// fetchMetadata reads one required metadata field; absent or empty values
// are parse failures.
func (p *Parser) fetchMetadata(metadata metadoc.Section, field, source string) (string, error) {
	value, ok := metadata.Find(field)
	if !ok || value == "" {
		return "", fmt.Errorf("base %s set %s: %s field missing", p.Kind.Label, source, field)
	}
	return value, nil
}

// parseChecksum decodes a hexadecimal checksum of exactly size bytes,
// accepting upper and lower case digits.
func parseChecksum(text string, size int) ([]byte, error) {
	if len(text) != size*2 {
		return nil, fmt.Errorf("expected %d hex characters, got %d", size*2, len(text))
	}
	sum, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("malformed hex: %w", err)
	}
	return sum, nil
}

// leadingInt parses the leading decimal integer of s, returning 0 when s
// does not start with one.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func sectionOrEmpty(doc metadoc.Document, name string) metadoc.Section {
	if s, ok := doc.Section(name); ok {
		return s
	}
	return emptySection{}
}

type emptySection struct{}

func (emptySection) Find(string) (string, bool) { return "", false }

func (emptySection) Keys() []string { return nil }
