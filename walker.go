package textify

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// frame captures the output of one open element until its end tag arrives.
type frame struct {
	tok     token
	fam     family
	ignored bool // raw start and end tags are kept around the content
	buf     strings.Builder

	list  *frame // owning ol/ul, on li frames
	count int    // items numbered so far, on ol frames
	href  string // on a frames
}

// walker renders a token stream in ModePreserve. Each open element the
// registry claims gets a frame; text goes to the innermost frame.
type walker struct {
	e     *Engine
	root  strings.Builder
	stack []*frame
}

func newWalker(e *Engine) *walker {
	return &walker{e: e}
}

func (w *walker) run(toks []token) string {
	for i, tok := range toks {
		switch tok.kind {
		case textToken:
			if interTagSpace(toks, i) {
				continue
			}
			w.write(w.e.text(tok.raw))
		case startToken, selfClosingToken:
			w.start(tok)
		case endToken:
			w.end(tok)
		}
	}
	for len(w.stack) > 0 {
		w.flatten()
	}
	return w.root.String()
}

func (w *walker) write(s string) {
	if n := len(w.stack); n > 0 {
		w.stack[n-1].buf.WriteString(s)
		return
	}
	w.root.WriteString(s)
}

func (w *walker) start(tok token) {
	fam := w.e.reg.get(tok.atom)
	if w.preserved(fam, tok) {
		if fam != nil && fam.scoped() && tok.kind == startToken {
			w.stack = append(w.stack, &frame{tok: tok, fam: fam, ignored: true})
			return
		}
		w.write(tok.raw)
		return
	}
	if fam == nil {
		return
	}
	out, f := fam.start(w, tok)
	if f != nil {
		// A self-closed element has no content to format.
		if tok.kind == startToken {
			f.tok, f.fam = tok, fam
			w.stack = append(w.stack, f)
		}
		return
	}
	w.write(out)
}

func (w *walker) end(tok token) {
	if i := w.index(tok.name); i >= 0 {
		for len(w.stack)-1 > i {
			w.flatten()
		}
		f := w.pop()
		if f.ignored {
			w.write(f.tok.raw + f.buf.String() + tok.raw)
			return
		}
		w.write(f.fam.end(w, f, tok))
		return
	}
	fam := w.e.reg.get(tok.atom)
	if w.preserved(fam, tok) {
		w.write(tok.raw)
		return
	}
	if fam != nil {
		w.write(fam.end(w, nil, tok))
	}
}

// preserved reports whether tok is copied through verbatim.
func (w *walker) preserved(fam family, tok token) bool {
	if p, ok := fam.(preserver); ok {
		return p.preserve(w, tok)
	}
	return w.e.ignore.Has(tok.name)
}

// flatten closes the innermost frame without formatting it.
func (w *walker) flatten() {
	f := w.pop()
	w.e.log.Debug().Str("tag", f.tok.name).Msg("unclosed element flattened")
	if f.ignored {
		w.write(f.tok.raw)
	}
	w.write(f.buf.String())
}

func (w *walker) pop() *frame {
	n := len(w.stack) - 1
	f := w.stack[n]
	w.stack = w.stack[:n]
	return f
}

// index returns the position of the innermost open frame named name, or -1.
func (w *walker) index(name string) int {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].tok.name == name {
			return i
		}
	}
	return -1
}

// nearest returns the innermost open frame for any of the given elements.
func (w *walker) nearest(elems ...atom.Atom) *frame {
	for i := len(w.stack) - 1; i >= 0; i-- {
		for _, a := range elems {
			if w.stack[i].tok.atom == a {
				return w.stack[i]
			}
		}
	}
	return nil
}

func (w *walker) within(a atom.Atom) bool {
	return w.nearest(a) != nil
}
