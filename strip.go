package textify

import "strings"

// strip keeps text runs and ignored tags and drops all other markup.
func (e *Engine) strip(toks []token) string {
	var b strings.Builder
	for _, tok := range toks {
		switch {
		case tok.kind == textToken:
			b.WriteString(e.text(tok.raw))
		case tok.isTag() && e.ignore.Has(tok.name):
			b.WriteString(tok.raw)
		}
	}
	return b.String()
}
