package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/utils"
)

var (
	outputFormat string
	showDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config [PATH]",
	Short: "Print the configuration that applies to a file or directory",
	Long: `Print the configuration that applies to a file or directory after every
discovered .tigrc file, --config and the project's tsconfig.json or jsconfig.json
have been merged.

Examples:
  tig config                     # Settings for files in the current directory
  tig config src/app.ts          # Settings for one file
  tig config --output toml src   # Print as TOML`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&outputFormat, "output", "o", config.FormatYAML, "Output format: yaml, toml or json")
	configCmd.Flags().BoolVar(&showDefaults, "defaults", false, "Print the built-in defaults only")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if showDefaults {
		return config.Encode(cmd.OutOrStdout(), config.DefaultLayer(), outputFormat)
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return err
	}
	if isDir {
		// layers are looked up from the directory a file lives in
		path = filepath.Join(path, "index.ts")
	}

	g, err := formatter.New(formatter.FormatterConfig{
		Strict:     strict,
		ConfigFile: configFile,
		Stdout:     cmd.OutOrStdout(),
		Logger:     newLogger(),
	})
	if err != nil {
		return err
	}

	layers, err := g.Layers(path, nil)
	if err != nil {
		return err
	}
	merged := config.MergeAll(layers...)
	if _, err := config.Build(merged); err != nil {
		return err
	}
	return config.Encode(cmd.OutOrStdout(), merged, outputFormat)
}
