package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/formatter"
)

const (
	UseDescription   = "tig [flags] PATH..."
	ShortDescription = "TypeScript imports grouper - A tool to group and sort JavaScript and TypeScript imports"
	LongDescription  = `tig is a command-line tool that groups and sorts the import block at the top of
JavaScript and TypeScript modules.

By default imports are organized into groups:
1. Runtime built-in modules (fs, node:path, ...)
2. External packages
3. Path aliases from tsconfig.json or jsconfig.json
4. Relative imports

Groups, ordering and rendering are configured with .tigrc.yaml, .tigrc.toml or .tigrc.json
files. A file's settings come from every config file between it and the nearest one marked
"root: true", closest last, then --config, then the flags below.

PATH can be a single source file or a directory. When a directory is specified,
all .js, .jsx, .mjs, .cjs, .ts, .tsx, .mts and .cts files in the directory and
subdirectories will be processed recursively, skipping node_modules.`
)

var (
	inPlace        bool
	check          bool
	workers        int
	verbose        bool
	strict         bool
	configFile     string
	quote          string
	eol            string
	semicolons     string
	comparator     string
	merge          bool
	typeOnlyLast   bool
	blankLines     int
	bracketSpacing bool
	showVersion    bool
	versionStr     string
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log config discovery and skipped files to stderr")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject unknown keys in config files")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file applied after discovered .tigrc files")

	rootCmd.Flags().BoolVar(&inPlace, "in-place", false, "Modify files in place instead of printing to stdout")
	rootCmd.Flags().BoolVar(&check, "check", false, "Report files that are not formatted and exit non-zero")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Number of files processed concurrently (default: number of CPUs)")
	rootCmd.Flags().StringVar(&quote, "quote", "", "Quote style of module specifiers: single, double or preserve")
	rootCmd.Flags().StringVar(&eol, "eol", "", "Line ending of the import block: lf, crlf or auto")
	rootCmd.Flags().StringVar(&semicolons, "semicolons", "", "Statement terminators: always, never or preserve")
	rootCmd.Flags().StringVar(&comparator, "comparator", "", "Order within a group: specifier, specifier-ci or binding")
	rootCmd.Flags().BoolVar(&merge, "merge", true, "Merge imports of the same module")
	rootCmd.Flags().BoolVar(&typeOnlyLast, "type-only-last", true, "Place type-only imports after value imports of the same module")
	rootCmd.Flags().IntVar(&blankLines, "blank-lines", 1, "Blank lines between groups")
	rootCmd.Flags().BoolVar(&bracketSpacing, "bracket-spacing", false, "Pad named imports with spaces inside braces")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if showVersion {
		return nil
	}
	return cobra.MinimumNArgs(1)(cmd, args)
}

// overrides collects the formatting flags given on the command line into a config layer.
// Flags left at their defaults do not override config files.
func overrides(cmd *cobra.Command) config.Layer {
	var l config.Layer
	flags := cmd.Flags()
	if flags.Changed("quote") {
		l.Quote = config.Ptr(config.Quote(quote))
	}
	if flags.Changed("eol") {
		l.EOL = config.Ptr(config.EOL(eol))
	}
	if flags.Changed("semicolons") {
		l.Semicolons = config.Ptr(config.Semicolons(semicolons))
	}
	if flags.Changed("comparator") {
		l.Comparator = config.Ptr(config.Comparator(comparator))
	}
	if flags.Changed("merge") {
		l.Merge = config.Bool(merge)
	}
	if flags.Changed("type-only-last") {
		l.TypeOnlyLast = config.Bool(typeOnlyLast)
	}
	if flags.Changed("blank-lines") {
		l.BlankLines = config.Int(blankLines)
	}
	if flags.Changed("bracket-spacing") {
		l.BracketSpacing = config.Bool(bracketSpacing)
	}
	return l
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "TypeScript Imports Group (TIG) version %s\n", versionStr)
		return nil
	}

	g, err := formatter.New(formatter.FormatterConfig{
		InPlace:    inPlace,
		Check:      check,
		Workers:    workers,
		Strict:     strict,
		ConfigFile: configFile,
		Overrides:  overrides(cmd),
		Stdout:     cmd.OutOrStdout(),
		Logger:     newLogger(),
	})
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range args {
		if err := g.ProcessPath(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func Execute(version string) error {
	versionStr = version
	return rootCmd.Execute()
}
