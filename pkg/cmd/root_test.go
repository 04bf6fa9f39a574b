package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOverrides(t *testing.T) {
	req := require.New(t)
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&quote, "quote", "", "")
	cmd.Flags().BoolVar(&merge, "merge", true, "")
	cmd.Flags().IntVar(&blankLines, "blank-lines", 1, "")
	cmd.Flags().StringVar(&eol, "eol", "", "")
	cmd.Flags().StringVar(&semicolons, "semicolons", "", "")
	cmd.Flags().StringVar(&comparator, "comparator", "", "")
	cmd.Flags().BoolVar(&typeOnlyLast, "type-only-last", true, "")
	cmd.Flags().BoolVar(&bracketSpacing, "bracket-spacing", false, "")

	req.Equal(config.Layer{}, overrides(cmd))

	req.NoError(cmd.Flags().Parse([]string{"--quote", "double", "--merge=false", "--blank-lines", "0"}))
	l := overrides(cmd)
	req.Equal(config.QuoteDouble, *l.Quote)
	req.False(*l.Merge)
	req.Equal(0, *l.BlankLines)
	req.Nil(l.EOL)
	req.Nil(l.BracketSpacing)
}

func TestRootCmd_version(t *testing.T) {
	req := require.New(t)
	versionStr = "v1.2.3"
	t.Cleanup(func() { showVersion = false })

	out, err := execute(t, "--version")
	req.NoError(err)
	req.Equal("TypeScript Imports Group (TIG) version v1.2.3\n", out)
}

func TestRootCmd_requiresPath(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
}

func TestRootCmd_format(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	req.NoError(os.WriteFile(path, []byte("import b from './b';\nimport fs from 'fs';\n"), 0o644))

	out, err := execute(t, path)
	req.NoError(err)
	req.Equal("import fs from 'fs';\n\nimport b from './b';\n", out)
}

func TestConfigCmd(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	req.NoError(os.WriteFile(filepath.Join(dir, ".tigrc.yaml"), []byte("root: true\nquote: double\nblankLines: 2\n"), 0o644))
	req.NoError(os.WriteFile(filepath.Join(dir, "jsconfig.json"), []byte(`{"compilerOptions": {"paths": {"@/*": ["./src/*"]}}}`), 0o644))
	t.Cleanup(func() { outputFormat = config.FormatYAML })

	out, err := execute(t, "config", "--output", "json", dir)
	req.NoError(err)

	var got struct {
		Quote      string   `json:"quote"`
		BlankLines int      `json:"blankLines"`
		Merge      bool     `json:"merge"`
		Aliases    []string `json:"aliases"`
	}
	req.NoError(json.Unmarshal([]byte(out), &got))
	req.Equal("double", got.Quote)
	req.Equal(2, got.BlankLines)
	req.True(got.Merge)
	req.Equal([]string{"@/*"}, got.Aliases)
}
