package formatter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
)

func TestClassifier_Classify(t *testing.T) {
	cfg := resolve(t, config.Layer{
		Groups: []config.GroupSpec{
			{Name: "builtin", Patterns: []string{"builtin"}},
			{Name: "react", Patterns: []string{"exact:react", "prefix:react-"}},
			{Name: "external", Patterns: []string{"*"}},
			{Name: "self", Patterns: []string{"self"}},
			{Name: "scoped", Patterns: []string{"scoped"}},
			{Name: "alias", Patterns: []string{"alias", "regex:^#"}},
			{Name: "relative", Patterns: []string{"relative"}},
		},
		Aliases:     []string{"@/*", "~config", "$lib/*/index"},
		PackageName: config.String("@acme/web"),
	})
	c := NewClassifier(cfg)

	tests := []struct {
		specifier string
		want      string
	}{
		{"fs", "builtin"},
		{"fs/promises", "builtin"},
		{"node:test", "builtin"},
		{"react", "react"},
		{"react-dom", "react"},
		{"reactive", "external"},
		{"lodash", "external"},
		{"@babel/core", "scoped"},
		{"@acme/web/utils", "self"},
		{"@acme/web", "self"},
		{"@acme/website", "scoped"},
		{"@/components/Button", "alias"},
		{"~config", "alias"},
		{"~config/x", "external"},
		{"$lib/ui/index", "alias"},
		{"#internal/db", "alias"},
		{"./a", "relative"},
		{"../b/c", "relative"},
		{".", "relative"},
		{"..", "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			require.Equal(t, tt.want, cfg.Groups[c.Classify(tt.specifier)].Name)
		})
	}
}

func TestClassifier_catchAllPosition(t *testing.T) {
	req := require.New(t)
	// The catch-all group sits first but only receives what nothing else matches.
	cfg := resolve(t, config.Layer{Groups: []config.GroupSpec{
		{Name: "rest", Patterns: []string{"*"}},
		{Name: "relative", Patterns: []string{"relative"}},
	}})
	c := NewClassifier(cfg)
	req.Equal("relative", cfg.Groups[c.Classify("./x")].Name)
	req.Equal("rest", cfg.Groups[c.Classify("x")].Name)

	// Without a catch-all the implicit group takes the rest.
	cfg = resolve(t, config.Layer{Groups: []config.GroupSpec{
		{Name: "relative", Patterns: []string{"relative"}},
	}})
	c = NewClassifier(cfg)
	req.Equal("other", cfg.Groups[c.Classify("x")].Name)
}

func TestClassifier_packagePattern(t *testing.T) {
	cfg := resolve(t, config.Layer{
		Groups: []config.GroupSpec{
			{Name: "packages", Patterns: []string{"package"}},
		},
		Aliases: []string{"@/*"},
	})
	c := NewClassifier(cfg)

	tests := []struct {
		specifier string
		want      string
	}{
		{"lodash", "packages"},
		{"@scope/pkg", "packages"},
		{"fs", "other"},
		{"node:fs", "other"},
		{"@/x", "other"},
		{"./x", "other"},
		{"/abs/path", "other"},
		{"https://esm.sh/preact", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			require.Equal(t, tt.want, cfg.Groups[c.Classify(tt.specifier)].Name)
		})
	}
}

func TestAliasPattern(t *testing.T) {
	req := require.New(t)
	req.True(parseAlias("@/*").match("@/x"))
	req.False(parseAlias("@/*").match("@"))
	req.True(parseAlias("*.css").match("theme.css"))
	req.False(parseAlias("a/*/b").match("a/b"))
	req.True(parseAlias("a/*/b").match("a/x/b"))
	req.True(parseAlias("exact").match("exact"))
	req.False(parseAlias("exact").match("exact/sub"))
}
