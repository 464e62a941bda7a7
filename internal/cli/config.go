package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	yaml "gopkg.in/yaml.v3"

	"github.com/grahms/textify"
)

// FileConfig is the schema of the optional --config file.
type FileConfig struct {
	PreserveFormatting *bool    `yaml:"preserveFormatting" json:"preserveFormatting"`
	IgnoreTags         []string `yaml:"ignoreTags" json:"ignoreTags"`

	Wrap struct {
		Words        int  `yaml:"words" json:"words"`
		Length       int  `yaml:"length" json:"length"`
		DisplayWidth bool `yaml:"displayWidth" json:"displayWidth"`
	} `yaml:"wrap" json:"wrap"`

	Normalize string `yaml:"normalize" json:"normalize"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// Settings is the merged result of defaults, config file and flags.
type Settings struct {
	PreserveFormatting bool
	IgnoreTags         []string
	WrapWords          int
	WrapLength         int
	DisplayWidth       bool
	Normalize          string
}

func defaultSettings() Settings {
	return Settings{PreserveFormatting: true}
}

func (s *Settings) apply(fc FileConfig) {
	if fc.PreserveFormatting != nil {
		s.PreserveFormatting = *fc.PreserveFormatting
	}
	if len(fc.IgnoreTags) > 0 {
		s.IgnoreTags = fc.IgnoreTags
	}
	if fc.Wrap.Words != 0 {
		s.WrapWords = fc.Wrap.Words
	}
	if fc.Wrap.Length != 0 {
		s.WrapLength = fc.Wrap.Length
	}
	if fc.Wrap.DisplayWidth {
		s.DisplayWidth = true
	}
	if fc.Normalize != "" {
		s.Normalize = fc.Normalize
	}
}

// EngineOptions validates the settings and turns them into engine options.
func (s Settings) EngineOptions() ([]textify.Option, error) {
	if s.WrapWords < 0 {
		return nil, textify.NewArgumentError("wrap-words", s.WrapWords, "must not be negative")
	}
	if s.WrapLength < 0 {
		return nil, textify.NewArgumentError("wrap-length", s.WrapLength, "must not be negative")
	}
	ignore, err := textify.ParseIgnoreTags(s.IgnoreTags)
	if err != nil {
		return nil, err
	}
	opts := []textify.Option{
		textify.WithPreserveFormatting(s.PreserveFormatting),
		textify.WithIgnoreSet(ignore),
		textify.WithWrapWords(s.WrapWords),
		textify.WithWrapLength(s.WrapLength),
	}
	if s.DisplayWidth {
		opts = append(opts, textify.WithWrapMeasure(textify.DisplayWidth))
	}
	if s.Normalize != "" {
		form, err := parseForm(s.Normalize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, textify.WithNormalization(form))
	}
	return opts, nil
}

func parseForm(name string) (norm.Form, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nfc":
		return norm.NFC, nil
	case "nfd":
		return norm.NFD, nil
	case "nfkc":
		return norm.NFKC, nil
	case "nfkd":
		return norm.NFKD, nil
	}
	return 0, fmt.Errorf("unknown normalization form %q (want nfc, nfd, nfkc or nfkd)", name)
}
