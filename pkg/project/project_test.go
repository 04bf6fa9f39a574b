package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_jsonc(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"plain", `{"compilerOptions": {"paths": {"@/*": ["./src/*"]}}}`, []string{"@/*"}},
		{"line comment", "{\"compilerOptions\": {\"paths\": {\"@/*\": [\"./src/*\"]} // aliases\n}}", []string{"@/*"}},
		{"block comment", `{/* c */"compilerOptions": {"paths": {/* one */"@/*": ["./src/*"]}}}`, []string{"@/*"}},
		{"trailing commas", `{"compilerOptions": {"paths": {"@/*": ["./src/*",], "#db": ["./db.ts"],},},}`, []string{"#db", "@/*"}},
		{"comment markers in strings", `{"compilerOptions": {"paths": {"//x": ["http://x/*"]}}}`, []string{"//x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tsconfig.json")
			writeFile(t, path, tt.src)
			opts, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, tt.want, opts.Aliases)
		})
	}
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "tsconfig.base.json"), `{
  // shared options
  "compilerOptions": {
    "moduleResolution": "Bundler",
    "paths": {
      "@shared/*": ["../shared/*"],
    },
  },
}`)
	writeFile(t, filepath.Join(root, "app", "tsconfig.json"), `{
  "extends": ["@tsconfig/strictest", "../tsconfig.base"],
  "compilerOptions": {
    "paths": {
      "@/*": ["./src/*"],
      "~config": ["./config.ts"]
    }
  }
}`)

	opts, err := Load(filepath.Join(root, "app", "tsconfig.json"))
	req.NoError(err)
	req.Equal([]string{"@/*", "~config"}, opts.Aliases)
	req.Equal("bundler", opts.ModuleResolution, "inherited from the extended file")

	base, err := Load(filepath.Join(root, "tsconfig.base.json"))
	req.NoError(err)
	req.Equal([]string{"@shared/*"}, base.Aliases)
}

func TestLoad_errors(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	_, err := Load(filepath.Join(root, "missing.json"))
	req.Error(err)

	writeFile(t, filepath.Join(root, "broken.json"), `{"compilerOptions": `)
	_, err = Load(filepath.Join(root, "broken.json"))
	req.Error(err)

	writeFile(t, filepath.Join(root, "loop.json"), `{"extends": "./loop.json"}`)
	_, err = Load(filepath.Join(root, "loop.json"))
	req.Error(err)
}

func TestLoader_Lookup(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "package.json"), `{"name": "my-app"}`)
	writeFile(t, filepath.Join(root, "jsconfig.json"), `{"compilerOptions": {"moduleResolution": "classic"}}`)
	writeFile(t, filepath.Join(root, "src", "index.js"), "")

	loader, err := NewLoader()
	req.NoError(err)

	opts, err := loader.Lookup(filepath.Join(root, "src"))
	req.NoError(err)
	req.Equal(filepath.Join(root, "jsconfig.json"), opts.Path)
	req.Equal("classic", opts.ModuleResolution)
	req.Equal("my-app", opts.PackageName)
	req.Nil(opts.Aliases)

	layer := opts.Layer()
	req.Nil(layer.Aliases)
	req.Equal("classic", *layer.ModuleResolution)
	req.Equal("my-app", *layer.PackageName)

	cfg, err := config.Resolve(layer)
	req.NoError(err)
	req.Equal("classic", cfg.ModuleResolution)
	req.Empty(cfg.Aliases)

	again, err := loader.Lookup(filepath.Join(root, "src"))
	req.NoError(err)
	req.Equal(opts, again)
}
