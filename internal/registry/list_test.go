package registry

import (
	"strings"
	"testing"
)

func TestCompletenessNote(t *testing.T) {
	cases := []struct {
		name                string
		total, valid, found int
		want                string
	}{
		{"fully valid", 4, 4, 4, ""},
		{"one corrupt", 4, 3, 4, "1 corrupt file"},
		{"two corrupt", 4, 2, 4, "2 corrupt files"},
		{"one missing", 4, 2, 3, "unusable: 1 missing file"},
		{"two missing", 4, 1, 2, "unusable: 2 missing files"},
	}
	for _, tc := range cases {
		s := &fakeSet{name: tc.name, total: tc.total, valid: tc.valid, found: tc.found}
		if got := CompletenessNote(s); got != tc.want {
			t.Errorf("%s: note = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSetsList(t *testing.T) {
	h := newHarness()
	whole := complete("WholeSet", 1, 1)
	whole.desc = "all files intact"
	h.add(t, whole)
	h.add(t, &fakeSet{name: "CorruptSet", short: 2, version: 1, total: 4, valid: 3, found: 4, desc: "one bad file"})
	h.add(t, &fakeSet{name: "HoleySet", short: 3, version: 1, total: 4, valid: 2, found: 3, desc: "one lost file"})

	out := h.reg.SetsList()
	if !strings.HasPrefix(out, "List of graphics sets:\n") {
		t.Fatalf("header missing: %q", out)
	}
	for _, want := range []string{
		"WholeSet: all files intact\n",
		"CorruptSet: one bad file (1 corrupt file)\n",
		"HoleySet: one lost file (unusable: 1 missing file)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q in:\n%s", want, out)
		}
	}
}
