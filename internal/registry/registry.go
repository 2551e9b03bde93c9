package registry

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"basecat/internal/logging"
)

// Set is the descriptor surface the registry needs.
type Set interface {
	Name() string
	ShortName() uint32
	Version() int
	Fallback() bool
	NumValid() int
	NumInvalid() int
	NumMissing() int
	FoldedChecksum() []byte
	PrimaryFile() string
	Description(pref string) string
}

// Entry constrains registry descriptors: comparable so the selected set
// can be tracked by identity across replacements.
type Entry interface {
	comparable
	Set
}

// ContentInfo identifies a set in a content-addressed catalog.
type ContentInfo struct {
	// ID is the packed identity code to match.
	ID uint32
	// Checksum, when non-empty, must equal the set's folded checksum.
	Checksum []byte
}

// Options configures a Registry.
type Options[T Entry] struct {
	// Label names the set kind in logs and listings.
	Label string
	// Load parses the candidate metadata file at a path. Required.
	Load func(path string) (T, error)
	// Best picks a set automatically when selection is requested with an
	// empty name. Defaults to most valid files, preferring non-fallback
	// sets, then highest version.
	Best func(available []T) (T, bool)
	// OnSelect runs after every successful selection.
	OnSelect func(T)
	// Logger is optional.
	Logger *slog.Logger
}

// Registry is the catalog of discovered sets for one kind.
type Registry[T Entry] struct {
	label    string
	load     func(path string) (T, error)
	best     func(available []T) (T, bool)
	onSelect func(T)
	logger   *slog.Logger

	available  []T
	duplicates []T
	used       T
	hasUsed    bool
}

// New builds an empty Registry.
func New[T Entry](opts Options[T]) *Registry[T] {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	best := opts.Best
	if best == nil {
		best = DetermineBest[T]
	}
	return &Registry[T]{
		label:    opts.Label,
		load:     opts.Load,
		best:     best,
		onSelect: opts.OnSelect,
		logger:   logger,
	}
}

// AddCandidate parses the metadata file at path and resolves it against
// the catalog. It reports whether the set was added or replaced an
// incumbent; parse failures and lost duplicate contests return false.
func (r *Registry[T]) AddCandidate(path string) bool {
	r.logger.Debug("checking candidate",
		logging.String("path", path),
		logging.String("kind", r.label),
	)

	set, err := r.load(path)
	if err != nil {
		r.logger.Debug("candidate rejected",
			logging.String("path", path),
			logging.String("kind", r.label),
			logging.Error(err),
		)
		return false
	}

	incumbentIdx := -1
	for i, c := range r.available {
		if c.Name() == set.Name() || c.ShortName() == set.ShortName() {
			incumbentIdx = i
			break
		}
	}

	if incumbentIdx < 0 {
		// Append keeps discovery order stable.
		r.available = append(r.available, set)
		r.logAdded(set)
		return true
	}

	incumbent := r.available[incumbentIdx]

	// The more complete set takes precedence over the version number.
	if (incumbent.NumValid() == set.NumValid() && incumbent.Version() >= set.Version()) ||
		incumbent.NumValid() > set.NumValid() {
		r.duplicates = append(r.duplicates, set)
		r.logger.Debug("not adding set",
			logging.String("name", set.Name()),
			logging.Int("version", set.Version()),
			logging.String("kind", r.label),
			logging.String("reason", duplicateReason(incumbent.NumValid() > set.NumValid())),
		)
		return false
	}

	// The challenger takes the incumbent's list position so ordering
	// survives replacement.
	r.available[incumbentIdx] = set

	// If the displaced set is currently selected (possible during a
	// rescan) the selection moves to the winner.
	if r.hasUsed && r.used == incumbent {
		r.used = set
	}

	r.duplicates = append(r.duplicates, incumbent)
	r.logger.Debug("replacing set",
		logging.String("name", incumbent.Name()),
		logging.Int("version", incumbent.Version()),
		logging.String("kind", r.label),
		logging.String("reason", duplicateReason(incumbent.NumValid() < set.NumValid())),
	)
	r.logAdded(set)
	return true
}

func (r *Registry[T]) logAdded(set T) {
	r.logger.Debug("adding set",
		logging.String("name", set.Name()),
		logging.Int("version", set.Version()),
		logging.String("kind", r.label),
	)
}

func duplicateReason(completeness bool) string {
	if completeness {
		return "less valid files"
	}
	return "lower version"
}

// Select chooses the set with the given name. An empty name delegates to
// the automatic best-set policy. Returns false, without side effects, when
// no set matches.
func (r *Registry[T]) Select(name string) bool {
	if strings.TrimSpace(name) == "" {
		best, ok := r.best(r.Available())
		if !ok {
			return false
		}
		r.setUsed(best)
		return true
	}

	for _, s := range r.available {
		if s.Name() == name {
			r.setUsed(s)
			return true
		}
	}
	return false
}

func (r *Registry[T]) setUsed(set T) {
	r.used = set
	r.hasUsed = true
	if r.onSelect != nil {
		r.onSelect(set)
	}
}

// DetermineBest is the default automatic selection policy: a non-fallback
// set beats a fallback one, then more valid files win, then the higher
// version.
func DetermineBest[T Entry](available []T) (T, bool) {
	var best T
	found := false
	for _, s := range available {
		if !found ||
			(best.Fallback() && !s.Fallback()) ||
			best.NumValid() < s.NumValid() ||
			(best.NumValid() == s.NumValid() && best.Version() < s.Version()) {
			best = s
			found = true
		}
	}
	return best, found
}

// visible reports whether a set shows up in counting and indexed access:
// the active selection always does, otherwise every required file must be
// present on disk.
func (r *Registry[T]) visible(s T) bool {
	if r.hasUsed && s == r.used {
		return true
	}
	return s.NumMissing() == 0
}

// Count returns the number of visible sets.
func (r *Registry[T]) Count() int {
	n := 0
	for _, s := range r.available {
		if r.visible(s) {
			n++
		}
	}
	return n
}

// IndexOfUsed returns the position of the selected set counting visible
// sets in discovery order, or -1 when nothing is selected. The selected
// set is always found, even when it would not be visible on its own: the
// walk stops the moment it is reached, before its own visibility is
// considered.
func (r *Registry[T]) IndexOfUsed() int {
	if !r.hasUsed {
		return -1
	}
	n := 0
	for _, s := range r.available {
		if s == r.used {
			return n
		}
		if s.NumMissing() != 0 {
			continue
		}
		n++
	}
	return -1
}

// ByIndex returns the i-th visible set in discovery order. Calling it with
// an index outside [0, Count()) is a contract violation and panics;
// callers must bound their iteration with Count.
func (r *Registry[T]) ByIndex(i int) T {
	remaining := i
	for _, s := range r.available {
		if !r.visible(s) {
			continue
		}
		if remaining == 0 {
			return s
		}
		remaining--
	}
	panic(fmt.Sprintf("registry: %s set index %d out of range", r.label, i))
}

// UsedSet returns the active selection, if any.
func (r *Registry[T]) UsedSet() (T, bool) {
	return r.used, r.hasUsed
}

// Available returns all accepted sets in discovery order.
func (r *Registry[T]) Available() []T {
	out := make([]T, len(r.available))
	copy(out, r.available)
	return out
}

// Duplicates returns the sets displaced by duplicate resolution.
func (r *Registry[T]) Duplicates() []T {
	out := make([]T, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// FindSetFile looks up an installed set matching the content identity:
// first the available sets, then the displaced duplicates. Only sets with
// no missing files qualify. When ci carries a checksum it must equal the
// set's folded checksum. Returns the set's primary file path.
func (r *Registry[T]) FindSetFile(ci ContentInfo) (string, bool) {
	if path, ok := findIn(r.available, ci); ok {
		return path, true
	}
	return findIn(r.duplicates, ci)
}

// HasSet reports whether any installed set matches the content identity.
func (r *Registry[T]) HasSet(ci ContentInfo) bool {
	_, ok := r.FindSetFile(ci)
	return ok
}

func findIn[T Entry](sets []T, ci ContentInfo) (string, bool) {
	for _, s := range sets {
		if s.NumMissing() != 0 {
			continue
		}
		if s.ShortName() != ci.ID {
			continue
		}
		if len(ci.Checksum) != 0 && !bytes.Equal(s.FoldedChecksum(), ci.Checksum) {
			continue
		}
		return s.PrimaryFile(), true
	}
	return "", false
}
