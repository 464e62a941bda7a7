package textify

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// Option configures an Engine.
type Option func(*Engine)

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		mode:    ModePreserve,
		ignore:  NewIgnoreSet(),
		measure: RuneCount,
		reg:     defaultRegistry,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithPreserveFormatting picks ModePreserve for true and ModeStrip for false.
func WithPreserveFormatting(preserve bool) Option {
	return func(e *Engine) {
		if preserve {
			e.mode = ModePreserve
		} else {
			e.mode = ModeStrip
		}
	}
}

func WithIgnoreTags(names ...string) Option {
	return func(e *Engine) { e.ignore = NewIgnoreSet(names...) }
}

func WithIgnoreSet(s IgnoreSet) Option {
	return func(e *Engine) { e.ignore = s }
}

// WithWrapWords wraps the output every n words. It wins over WithWrapLength;
// n below 1 leaves the output unwrapped.
func WithWrapWords(n int) Option {
	return func(e *Engine) { e.wrapWords = n }
}

// WithWrapLength wraps the output greedily at n characters as counted by the
// engine's Measure. n below 1 leaves the output unwrapped.
func WithWrapLength(n int) Option {
	return func(e *Engine) { e.wrapLength = n }
}

func WithWrapMeasure(m Measure) Option {
	return func(e *Engine) {
		if m != nil {
			e.measure = m
		}
	}
}

// WithNormalization applies a Unicode normalization form to text runs.
// Preserved tags are never normalized.
func WithNormalization(f norm.Form) Option {
	return func(e *Engine) { e.normalize = f.String }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Ignored returns the set of tags the engine copies through verbatim.
func (e *Engine) Ignored() IgnoreSet { return e.ignore }

// ===== entry points =====

// Textify converts text with a one-off Engine built from opts.
func Textify(text string, opts ...Option) string {
	return NewEngine(opts...).Textify(text)
}

// PreserveFormat renders text in ModePreserve without wrapping.
func PreserveFormat(text string, ignoreTags ...string) string {
	return NewEngine(WithIgnoreTags(ignoreTags...)).Textify(text)
}

// Strip removes every tag not named in ignoreTags. Entities are left encoded.
func Strip(text string, ignoreTags ...string) string {
	return NewEngine(WithMode(ModeStrip), WithIgnoreTags(ignoreTags...)).Textify(text)
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Textify converts text according to the engine's mode, then wraps it if a
// wrap width was configured.
func (e *Engine) Textify(text string) string {
	if text == "" {
		return ""
	}
	var out string
	if e.mode == ModeStrip {
		out = strings.TrimSpace(e.strip(tokenize(text)))
	} else {
		w := newWalker(e)
		out = w.run(tokenize(text))
		out = excessNewlines.ReplaceAllString(out, "\n\n")
		out = strings.TrimSpace(out)
	}
	switch {
	case e.wrapWords > 0:
		out = wrapWords(out, e.wrapWords)
	case e.wrapLength > 0:
		out = wrapLength(out, e.wrapLength, e.measure)
	}
	e.log.Debug().
		Stringer("mode", e.mode).
		Int("in", len(text)).
		Int("out", len(out)).
		Msg("textify")
	return out
}

// text prepares a text run for output.
func (e *Engine) text(raw string) string {
	s := raw
	if e.mode == ModePreserve {
		s = DecodeEntities(s)
	}
	if e.normalize != nil {
		s = e.normalize(s)
	}
	return s
}
