// Package cli implements the textify command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/grahms/textify"
)

type rootOptions struct {
	configPath   string
	outputPath   string
	strip        bool
	ignore       []string
	wrapWords    int
	wrapLength   int
	displayWidth bool
	normalize    string
	verbose      bool
}

// NewRootCmd builds the textify command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "textify [file]",
		Short: "Convert tagged text to plain text",
		Long: `Reads HTML-like markup from a file or stdin and writes plain text.
By default headings, paragraphs, emphasis, links, lists, blockquotes and
tables are kept as markdown-like text; --strip removes every tag instead.
Tags listed with --ignore are copied through unchanged.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML or JSON config file")
	f.StringVarP(&opts.outputPath, "output", "o", "", "write to this file instead of stdout")
	f.BoolVar(&opts.strip, "strip", false, "remove all tags without markdown-like formatting")
	f.StringSliceVarP(&opts.ignore, "ignore", "i", nil, "tag names to keep verbatim (repeatable or comma-separated)")
	f.IntVar(&opts.wrapWords, "wrap-words", 0, "put this many words on each line (wins over --wrap-length)")
	f.IntVar(&opts.wrapLength, "wrap-length", 0, "wrap lines at this many characters")
	f.BoolVar(&opts.displayWidth, "display-width", false, "count terminal cells instead of runes for --wrap-length")
	f.StringVar(&opts.normalize, "normalize", "", "Unicode normalization of text: nfc, nfd, nfkc or nfkd")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		logger := newLogger(cmd.ErrOrStderr(), false)
		logger.Error().Err(err).Msg("textify failed")
	}
	return err
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().
		Logger()
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	settings, err := resolveSettings(cmd, opts)
	if err != nil {
		return err
	}
	engineOpts, err := settings.EngineOptions()
	if err != nil {
		return err
	}

	input, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	engine := textify.NewEngine(append(engineOpts, textify.WithLogger(logger))...)
	ignored := engine.Ignored()
	logger.Debug().
		Str("source", source).
		Bool("preserve", settings.PreserveFormatting).
		Int("ignoreCount", ignored.Len()).
		Strs("ignore", ignored.Names()).
		Int("wrapWords", settings.WrapWords).
		Int("wrapLength", settings.WrapLength).
		Msg("converting")

	out := engine.Textify(string(input))

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug().Str("path", opts.outputPath).Int("bytes", len(out)+1).Msg("output written")
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// resolveSettings layers the config file and then explicitly set flags over
// the defaults.
func resolveSettings(cmd *cobra.Command, opts *rootOptions) (Settings, error) {
	s := defaultSettings()
	if opts.configPath != "" {
		fc, err := LoadConfigFile(opts.configPath)
		if err != nil {
			return s, fmt.Errorf("load config: %w", err)
		}
		s.apply(fc)
	}
	f := cmd.Flags()
	if f.Changed("strip") {
		s.PreserveFormatting = !opts.strip
	}
	if f.Changed("ignore") {
		s.IgnoreTags = opts.ignore
	}
	if f.Changed("wrap-words") {
		s.WrapWords = opts.wrapWords
	}
	if f.Changed("wrap-length") {
		s.WrapLength = opts.wrapLength
	}
	if f.Changed("display-width") {
		s.DisplayWidth = opts.displayWidth
	}
	if f.Changed("normalize") {
		s.Normalize = opts.normalize
	}
	return s, nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "stdin", fmt.Errorf("read stdin: %w", err)
		}
		return b, "stdin", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, args[0], fmt.Errorf("read input: %w", err)
	}
	return b, args[0], nil
}
