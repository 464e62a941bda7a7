package textify

import (
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
)

// family renders one group of related elements.
type family interface {
	// elems returns the elements handled by this family.
	elems() []atom.Atom
	// scoped families keep a frame open even when their tag is ignored, so
	// that descendants can see they sit inside a preserved block.
	scoped() bool
	// start handles a start or self-closing tag that is not preserved. It
	// returns text to emit, or a frame to capture content into.
	start(w *walker, tok token) (string, *frame)
	// end renders a frame opened by start. f is nil for an end tag that has
	// no open frame.
	end(w *walker, f *frame, tok token) string
}

// preserver overrides the plain ignore-set lookup for a family.
type preserver interface {
	preserve(w *walker, tok token) bool
}

type registry struct {
	byAtom map[atom.Atom]family
}

func newRegistry(fams ...family) *registry {
	r := &registry{byAtom: map[atom.Atom]family{}}
	for _, f := range fams {
		r.register(f)
	}
	return r
}

func (r *registry) register(f family) {
	for _, a := range f.elems() {
		r.byAtom[a] = f
	}
}

func (r *registry) get(a atom.Atom) family {
	if a == 0 {
		return nil
	}
	return r.byAtom[a]
}

var defaultRegistry = newRegistry(
	lineBreak{},
	blockEnd{},
	emphasis{marker: "**", tags: []atom.Atom{atom.B, atom.Strong}},
	emphasis{marker: "*", tags: []atom.Atom{atom.I, atom.Em}},
	link{},
	list{tag: atom.Ol},
	list{tag: atom.Ul},
	listItem{},
	blockquote{},
	table{},
	tableRow{},
	tableCell{},
)

// ===== inline =====

// lineBreak turns <br> into a newline. Inside a blockquote it does so even
// when br is ignored.
type lineBreak struct{}

func (lineBreak) elems() []atom.Atom { return []atom.Atom{atom.Br} }
func (lineBreak) scoped() bool       { return false }

func (lineBreak) start(*walker, token) (string, *frame) { return "\n", nil }

func (lineBreak) end(*walker, *frame, token) string { return "" }

func (lineBreak) preserve(w *walker, tok token) bool {
	return w.e.ignore.Has(tok.name) && !w.within(atom.Blockquote)
}

// blockEnd ends headings and paragraphs with a blank line.
type blockEnd struct{}

func (blockEnd) elems() []atom.Atom {
	return []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P}
}
func (blockEnd) scoped() bool { return false }

func (blockEnd) start(*walker, token) (string, *frame) { return "", nil }

func (blockEnd) end(*walker, *frame, token) string { return "\n\n" }

// emphasis wraps content in marker. A start tag for an element that is
// already open is dropped, so each start pairs with the next end tag.
type emphasis struct {
	marker string
	tags   []atom.Atom
}

func (e emphasis) elems() []atom.Atom { return e.tags }
func (emphasis) scoped() bool         { return false }

func (emphasis) start(w *walker, tok token) (string, *frame) {
	if w.within(tok.atom) {
		return "", nil
	}
	return "", &frame{}
}

func (e emphasis) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return e.marker + f.buf.String() + e.marker
}

// link renders <a href> as [text](href). Anchors without href are stripped.
// The href gets the same entity decoding as text.
type link struct{}

func (link) elems() []atom.Atom { return []atom.Atom{atom.A} }
func (link) scoped() bool       { return false }

func (link) start(w *walker, tok token) (string, *frame) {
	href, ok := tok.attrs["href"]
	if !ok || w.within(atom.A) {
		return "", nil
	}
	return "", &frame{href: DecodeEntities(href)}
}

func (link) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return "[" + f.buf.String() + "](" + f.href + ")"
}

// ===== lists =====

// list is a container for listItem; its own tags render as nothing.
type list struct {
	tag atom.Atom
}

func (l list) elems() []atom.Atom { return []atom.Atom{l.tag} }
func (list) scoped() bool         { return true }

func (list) start(*walker, token) (string, *frame) { return "", &frame{} }

func (list) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return f.buf.String()
}

// listItem renders an item of the innermost open list. Items of an ignored
// list, or outside any list, are left to generic stripping.
type listItem struct{}

func (listItem) elems() []atom.Atom { return []atom.Atom{atom.Li} }
func (listItem) scoped() bool       { return false }

func (listItem) start(w *walker, _ token) (string, *frame) {
	l := w.nearest(atom.Ol, atom.Ul)
	if l == nil || l.ignored {
		return "", nil
	}
	return "", &frame{list: l}
}

func (listItem) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	if f.list.tok.atom == atom.Ol {
		f.list.count++
		return strconv.Itoa(f.list.count) + ". " + f.buf.String() + "\n"
	}
	return "- " + f.buf.String() + "\n"
}

// ===== blockquote =====

type blockquote struct{}

func (blockquote) elems() []atom.Atom { return []atom.Atom{atom.Blockquote} }
func (blockquote) scoped() bool       { return true }

func (blockquote) start(*walker, token) (string, *frame) { return "", &frame{} }

func (blockquote) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return quote(f.buf.String())
}

// quote prefixes every non-empty line with "> ". Blank lines stay blank.
func quote(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			line = "> " + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// ===== tables =====

// table lays rows out one per line with tab-separated cells.
type table struct{}

func (table) elems() []atom.Atom { return []atom.Atom{atom.Table} }
func (table) scoped() bool       { return true }

func (table) start(*walker, token) (string, *frame) { return "", &frame{} }

func (table) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return strings.TrimRight(f.buf.String(), "\n")
}

// inTable reports whether tr/td/th should be rendered: the innermost table
// must exist and not be ignored.
func inTable(w *walker) bool {
	t := w.nearest(atom.Table)
	return t != nil && !t.ignored
}

type tableRow struct{}

func (tableRow) elems() []atom.Atom { return []atom.Atom{atom.Tr} }
func (tableRow) scoped() bool       { return false }

func (tableRow) start(w *walker, _ token) (string, *frame) {
	if !inTable(w) {
		return "", nil
	}
	return "", &frame{}
}

func (tableRow) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return strings.TrimSuffix(f.buf.String(), "\t") + "\n"
}

type tableCell struct{}

func (tableCell) elems() []atom.Atom { return []atom.Atom{atom.Td, atom.Th} }
func (tableCell) scoped() bool       { return false }

func (tableCell) start(w *walker, _ token) (string, *frame) {
	if !inTable(w) {
		return "", nil
	}
	return "", &frame{}
}

func (tableCell) end(_ *walker, f *frame, _ token) string {
	if f == nil {
		return ""
	}
	return f.buf.String() + "\t"
}
