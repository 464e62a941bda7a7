package textify

import (
	"regexp"
	"strings"
)

var entityRe = regexp.MustCompile(`(?i)&(nbsp|amp|lt|gt);`)

var entityText = map[string]string{
	"nbsp": " ",
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
}

// DecodeEntities replaces &nbsp;, &amp;, &lt; and &gt; (any letter case)
// in a single pass. Other references are left as they are.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityRe.ReplaceAllStringFunc(s, func(m string) string {
		return entityText[strings.ToLower(m[1:len(m)-1])]
	})
}
