// Package language picks the best available description translation for a
// user's preferred language.
package language

import "golang.org/x/text/language"

// Pick returns the member of available that best matches pref according to
// BCP 47 matching rules, and whether any acceptable match exists. Entries
// in available that do not parse as language tags are skipped.
func Pick(pref string, available []string) (string, bool) {
	want, err := language.Parse(pref)
	if err != nil {
		return "", false
	}

	tags := make([]language.Tag, 0, len(available))
	codes := make([]string, 0, len(available))
	for _, code := range available {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return "", false
	}

	_, index, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return "", false
	}
	return codes[index], true
}
