package textify

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type tokenKind int

const (
	textToken tokenKind = iota
	startToken
	endToken
	selfClosingToken
	markupToken // comments, doctypes, processing instructions
)

// token is one lexical unit of the input. raw always holds the exact input
// bytes so that preserved tags can be copied through unchanged.
type token struct {
	kind  tokenKind
	name  string    // lowercase tag name
	atom  atom.Atom // zero for names html/atom does not know
	raw   string
	attrs map[string]string // values as written, entities not decoded
}

func (t token) isTag() bool {
	return t.kind == startToken || t.kind == endToken || t.kind == selfClosingToken
}

// tokenize splits src into text runs and markup. It never fails: the html
// tokenizer treats anything that is not a tag as text, and a tag cut off by
// the end of the input is kept as text too.
func tokenize(src string) []token {
	z := html.NewTokenizer(strings.NewReader(src))
	var toks []token
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) && len(z.Raw()) > 0 {
				toks = append(toks, token{kind: textToken, raw: string(z.Raw())})
			}
			return toks
		}
		// Raw must be copied before TagName: the tokenizer lowercases names
		// in place.
		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			toks = append(toks, token{kind: textToken, raw: raw})
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			if tt != html.EndTagToken {
				// title, textarea, script, plaintext and friends get no
				// special content model: tags inside them are still tags.
				z.NextIsNotRawText()
			}
			name, _ := z.TagName()
			tok := token{name: string(name), atom: atom.Lookup(name), raw: raw}
			switch tt {
			case html.StartTagToken:
				tok.kind = startToken
				tok.attrs = rawAttrs(raw)
			case html.SelfClosingTagToken:
				tok.kind = selfClosingToken
				tok.attrs = rawAttrs(raw)
			default:
				tok.kind = endToken
			}
			toks = append(toks, tok)
		default:
			toks = append(toks, token{kind: markupToken, raw: raw})
		}
	}
}

// rawAttrs reads the attributes of a start tag as written, entities still
// encoded. Keys are lowercased and the first of duplicate keys wins. It
// follows the html tokenizer's rules for where keys and values end.
func rawAttrs(raw string) map[string]string {
	i := 1
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	var attrs map[string]string
	for {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			return attrs
		}
		start := i
		i++ // a leading '=' is part of the key
		for i < len(raw) && !isTagSpace(raw[i]) && !strings.ContainsRune("/=>", rune(raw[i])) {
			i++
		}
		key := strings.ToLower(raw[start:i])
		for i < len(raw) && isTagSpace(raw[i]) {
			i++
		}
		var val string
		if i < len(raw) && raw[i] == '=' {
			i++
			for i < len(raw) && isTagSpace(raw[i]) {
				i++
			}
			switch {
			case i < len(raw) && (raw[i] == '"' || raw[i] == '\''):
				q := raw[i]
				i++
				start := i
				for i < len(raw) && raw[i] != q {
					i++
				}
				val = raw[start:i]
				if i < len(raw) {
					i++
				}
			default:
				start := i
				for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' {
					i++
				}
				val = raw[start:i]
			}
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		if _, dup := attrs[key]; !dup {
			attrs[key] = val
		}
	}
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// interTagSpace reports whether toks[i] is whitespace sitting directly
// between two pieces of markup, e.g. the indentation in "</li>\n  <li>".
func interTagSpace(toks []token, i int) bool {
	if i == 0 || i == len(toks)-1 {
		return false
	}
	if strings.Trim(toks[i].raw, " \t\n\r\f") != "" {
		return false
	}
	return toks[i-1].kind != textToken && toks[i+1].kind != textToken
}
