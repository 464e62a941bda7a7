package textify

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measure reports the length of a word for character-budget wrapping.
type Measure func(s string) int

var (
	// RuneCount measures in Unicode code points.
	RuneCount Measure = utf8.RuneCountInString
	// DisplayWidth measures in terminal cells, so wide CJK runes count twice
	// and combining marks count zero.
	DisplayWidth Measure = runewidth.StringWidth
)

// WrapByWords splits text on whitespace and puts count words on each line.
// The last line may hold fewer. A count below 1 is an *ArgumentError.
func WrapByWords(text string, count int) (string, error) {
	if count <= 0 {
		return "", NewArgumentError("count", count, "must be a positive number of words")
	}
	return wrapWords(text, count), nil
}

// WrapByLength greedily fills lines up to maxChars runes. A word longer than
// maxChars sits alone on its own line. maxChars below 1 disables wrapping.
func WrapByLength(text string, maxChars int) string {
	return wrapLength(text, maxChars, RuneCount)
}

func wrapWords(text string, count int) string {
	words := strings.Fields(text)
	lines := make([]string, 0, len(words)/count+1)
	for len(words) > 0 {
		n := min(count, len(words))
		lines = append(lines, strings.Join(words[:n], " "))
		words = words[n:]
	}
	return strings.Join(lines, "\n")
}

func wrapLength(text string, limit int, measure Measure) string {
	if limit <= 0 {
		return text
	}
	if measure == nil {
		measure = RuneCount
	}
	var (
		lines []string
		line  strings.Builder
		width int
	)
	for _, word := range strings.Fields(text) {
		w := measure(word)
		switch {
		case line.Len() == 0:
			line.WriteString(word)
			width = w
		case width+1+w > limit:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			width = w
		default:
			line.WriteByte(' ')
			line.WriteString(word)
			width += 1 + w
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
