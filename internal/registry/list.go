package registry

import (
	"fmt"
	"strings"
)

// SetsList renders the human-readable catalog listing: one line per set
// with its name, default description, and completeness note.
func (r *Registry[T]) SetsList() string {
	var b strings.Builder
	fmt.Fprintf(&b, "List of %s sets:\n", r.label)
	for _, s := range r.available {
		fmt.Fprintf(&b, "%18s: %s", s.Name(), s.Description(""))
		if note := CompletenessNote(s); note != "" {
			fmt.Fprintf(&b, " (%s)", note)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// CompletenessNote summarizes a set's file state in one of three mutually
// exclusive forms: empty when fully valid, a corrupt-file count when every
// file is at least present, and an unusable note when files are absent.
func CompletenessNote(s Set) string {
	invalid := s.NumInvalid()
	if invalid == 0 {
		return ""
	}
	missing := s.NumMissing()
	if missing == 0 {
		return fmt.Sprintf("%d corrupt file%s", invalid, plural(invalid))
	}
	return fmt.Sprintf("unusable: %d missing file%s", missing, plural(missing))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
