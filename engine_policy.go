package textify

import "github.com/rs/zerolog"

// Mode selects how markup is turned into text.
type Mode int

const (
	ModePreserve Mode = iota // rewrite known constructs into markdown-like text
	ModeStrip                // drop every tag that is not ignored, nothing else
)

func (m Mode) String() string {
	switch m {
	case ModePreserve:
		return "preserve"
	case ModeStrip:
		return "strip"
	default:
		return "unknown"
	}
}

// Engine holds a fixed conversion configuration. It is never mutated after
// NewEngine returns and may be shared between goroutines.
type Engine struct {
	mode       Mode
	ignore     IgnoreSet
	wrapWords  int
	wrapLength int
	measure    Measure
	normalize  func(string) string
	reg        *registry
	log        zerolog.Logger
}
