package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahms/textify"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "textify [file]", NewRootCmd().Use)
}

func TestRootCmd_ReadsStdin(t *testing.T) {
	out, _, err := runCLI(t, "<ul><li>Item 1</li><li>Item 2</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "- Item 1\n- Item 2\n", out)
}

func TestRootCmd_ReadsFileArgument(t *testing.T) {
	path := writeFile(t, "in.html", "<table><tr><td>A1</td><td>B1</td></tr></table>")
	out, _, err := runCLI(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "A1\tB1\n", out)
}

func TestRootCmd_DashMeansStdin(t *testing.T) {
	out, _, err := runCLI(t, "<b>x</b>", "-")
	require.NoError(t, err)
	assert.Equal(t, "**x**\n", out)
}

func TestRootCmd_Strip(t *testing.T) {
	out, _, err := runCLI(t, "<p>a &amp; <b>b</b></p>", "--strip")
	require.NoError(t, err)
	assert.Equal(t, "a &amp; b\n", out)
}

func TestRootCmd_Ignore(t *testing.T) {
	out, _, err := runCLI(t, "<p><mark>m</mark> <span>s</span></p>", "--ignore", "mark,span")
	require.NoError(t, err)
	assert.Equal(t, "<mark>m</mark><span>s</span>\n", out)

	out, _, err = runCLI(t, "<mark>m</mark><b>b</b>", "-i", "mark", "-i", "b")
	require.NoError(t, err)
	assert.Equal(t, "<mark>m</mark><b>b</b>\n", out)
}

func TestRootCmd_RejectsBadIgnoreName(t *testing.T) {
	_, _, err := runCLI(t, "x", "--ignore", "not a tag")
	require.Error(t, err)
	assert.True(t, errors.Is(err, textify.ErrInvalidTagName))
}

func TestRootCmd_Wrap(t *testing.T) {
	out, _, err := runCLI(t, "one two three four five", "--wrap-words", "2")
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree four\nfive\n", out)

	out, _, err = runCLI(t, "This is a test sentence for wrapping.", "--wrap-length", "10")
	require.NoError(t, err)
	assert.Equal(t, "This is a\ntest\nsentence\nfor\nwrapping.\n", out)
}

func TestRootCmd_RejectsNegativeWrap(t *testing.T) {
	_, _, err := runCLI(t, "x", "--wrap-words", "-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, textify.ErrInvalidArgument))
}

func TestRootCmd_Normalize(t *testing.T) {
	out, _, err := runCLI(t, "café", "--normalize", "nfc")
	require.NoError(t, err)
	assert.Equal(t, "café\n", out)

	_, _, err = runCLI(t, "x", "--normalize", "nfx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown normalization form")
}

func TestRootCmd_WritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	out, _, err := runCLI(t, "<p>hi</p>", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(b))
}

func TestRootCmd_MissingInputFile(t *testing.T) {
	_, _, err := runCLI(t, "", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "textify.yaml", `
preserveFormatting: false
ignoreTags: [mark]
wrap:
  words: 2
`)
	out, _, err := runCLI(t, "<p>a <mark>b</mark> c d</p>", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "a <mark>b</mark>\nc d\n", out)
}

func TestRootCmd_FlagsOverrideConfigFile(t *testing.T) {
	cfg := writeFile(t, "textify.json", `{"preserveFormatting": false, "wrap": {"words": 1}}`)
	out, _, err := runCLI(t, "<b>a b</b>", "--config", cfg, "--strip=false", "--wrap-words", "0")
	require.NoError(t, err)
	assert.Equal(t, "**a b**\n", out)
}

func TestRootCmd_BadConfigFile(t *testing.T) {
	cfg := writeFile(t, "bad.yaml", "wrap: [1, 2")
	_, _, err := runCLI(t, "x", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	out, stderr, err := runCLI(t, "<b>open", "-v")
	require.NoError(t, err)
	assert.Equal(t, "open\n", out)
	assert.Contains(t, stderr, "converting")
	assert.Contains(t, stderr, "unclosed element flattened")
}

func TestRootCmd_VerboseLogsIgnoreSet(t *testing.T) {
	_, stderr, err := runCLI(t, "x", "-v", "--ignore", "SPAN,<mark>")
	require.NoError(t, err)
	assert.Contains(t, stderr, `["mark","span"]`)
}

func TestRootCmd_QuietByDefault(t *testing.T) {
	_, stderr, err := runCLI(t, "<b>open")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, _, err := runCLI(t, "", "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "textify version test-version-1.0.0")
}

func TestLoadConfigFile_DisplayWidthAndNormalize(t *testing.T) {
	cfg := writeFile(t, "c.yml", "wrap:\n  length: 8\n  displayWidth: true\nnormalize: NFKC\n")
	fc, err := LoadConfigFile(cfg)
	require.NoError(t, err)
	assert.Nil(t, fc.PreserveFormatting)
	assert.Equal(t, 8, fc.Wrap.Length)
	assert.True(t, fc.Wrap.DisplayWidth)

	s := defaultSettings()
	s.apply(fc)
	opts, err := s.EngineOptions()
	require.NoError(t, err)
	got := textify.NewEngine(opts...).Textify("日本語 テキスト")
	assert.Equal(t, "日本語\nテキスト", got)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	quiet := newLogger(&buf, false)
	quiet.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	verbose := newLogger(&buf, true)
	verbose.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	discard := newLogger(io.Discard, true)
	discard.Info().Msg("discarded")
}
