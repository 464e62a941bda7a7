package textify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a&nbsp;b", "a b"},
		{"&amp; &lt; &gt;", "& < >"},
		{"&NBSP;&Amp;&LT;&gT;", " &<>"},
		{"&amp;lt;", "&lt;"},
		{"&quot;&copy;&#39;", "&quot;&copy;&#39;"},
		{"&amp no semicolon", "&amp no semicolon"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeEntities(tt.in), "input %q", tt.in)
	}
}
