package metadoc

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Document is a parsed metadata file: named sections of key/value pairs.
type Document interface {
	// Section returns the named section and whether it exists.
	Section(name string) (Section, bool)
}

// Section is one group of string key/value pairs.
type Section interface {
	// Find returns the raw value for key and whether the key exists. A key
	// may exist with an empty value; callers that need "present but blank"
	// must check both results.
	Find(key string) (string, bool)
	// Keys returns all keys in the section, sorted.
	Keys() []string
}

// File is a Document backed by a TOML file on disk.
type File struct {
	path     string
	sections map[string]*mapSection
}

type mapSection struct {
	values map[string]string
}

// Load reads and parses the TOML document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse parses TOML bytes into a Document. Top-level tables become
// sections; top-level scalars are ignored.
func Parse(data []byte) (*File, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &File{sections: make(map[string]*mapSection, len(raw))}
	for name, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			continue
		}
		section := &mapSection{values: make(map[string]string, len(table))}
		flatten("", table, section.values)
		doc.sections[name] = section
	}
	return doc, nil
}

// Path returns the file the document was loaded from, if any.
func (f *File) Path() string { return f.path }

// Section implements Document.
func (f *File) Section(name string) (Section, bool) {
	s, ok := f.sections[name]
	return s, ok
}

func (s *mapSection) Find(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *mapSection) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flatten collapses nested tables into dot-joined keys.
func flatten(prefix string, table map[string]any, out map[string]string) {
	for key, value := range table {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(name, nested, out)
			continue
		}
		out[name] = stringify(value)
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
