package textify

import (
	"regexp"
	"sort"
	"strings"
)

// tagNameRe accepts HTML element names, custom elements and namespaced names.
var tagNameRe = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[-:._][a-z0-9]+)*$`)

// IgnoreSet is an immutable set of lowercase tag names that the engine must
// copy through verbatim instead of rewriting or stripping.
type IgnoreSet struct {
	names map[string]struct{}
}

// NewIgnoreSet builds a set from names. Names are trimmed and lowercased;
// empty entries are skipped. Nothing is validated, see ParseIgnoreTags.
func NewIgnoreSet(names ...string) IgnoreSet {
	s := IgnoreSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = canonicalName(n)
		if n == "" {
			continue
		}
		s.names[n] = struct{}{}
	}
	return s
}

// ParseIgnoreTags is the strict form of NewIgnoreSet used for user input.
// Entries may be written bare ("b") or bracketed ("<b>", "</b>").
// The first entry that is not a tag name yields a *TagNameError.
func ParseIgnoreTags(names []string) (IgnoreSet, error) {
	for _, raw := range names {
		n := canonicalName(raw)
		if n == "" {
			continue
		}
		if !tagNameRe.MatchString(n) {
			return IgnoreSet{}, NewTagNameError(raw, "expected a letter followed by letters, digits or - : . _")
		}
	}
	return NewIgnoreSet(names...), nil
}

// Has reports whether name is in the set. The lookup is case-insensitive.
func (s IgnoreSet) Has(name string) bool {
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Len returns the number of names in the set.
func (s IgnoreSet) Len() int { return len(s.names) }

// Names returns the names in the set, sorted.
func (s IgnoreSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// canonicalName lowercases a tag name and drops surrounding brackets.
func canonicalName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "<")
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimSuffix(name, ">")
	name = strings.TrimSuffix(name, "/")
	return strings.ToLower(strings.TrimSpace(name))
}
