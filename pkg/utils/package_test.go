package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils_GetPackageName(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	req.NoError(os.WriteFile(filepath.Join(tempDir, PackageManifest), []byte(`{"name": "@acme/web", "private": true}`), 0644))

	subDir := filepath.Join(tempDir, "src", "components")
	req.NoError(os.MkdirAll(subDir, 0755))
	testFile := filepath.Join(subDir, "App.tsx")
	req.NoError(os.WriteFile(testFile, []byte("export {}"), 0644))

	// Test: finds package.json in parent directory
	req.Equal("@acme/web", GetPackageName(testFile))

	// Test: a nameless nested manifest is skipped
	nested := filepath.Join(tempDir, "src", PackageManifest)
	req.NoError(os.WriteFile(nested, []byte(`{"type": "module"}`), 0644))
	req.Equal("@acme/web", GetPackageName(testFile))
}

func TestUtils_GetPackageName_fallbacks(t *testing.T) {
	req := require.New(t)
	// Test with non-existent file
	req.Empty(GetPackageName("/non/existent/path/file.ts"), "Expected empty string for non-existent path")

	// Test with node_modules path pattern
	req.Equal("lodash", GetPackageName("/non/existent/node_modules/lodash/fp/map.js"))
	req.Equal("@scope/pkg", GetPackageName("/non/existent/node_modules/@scope/pkg/dist/index.js"))
}

func TestFindUp(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()
	deep := filepath.Join(tempDir, "a", "b", "c")
	req.NoError(os.MkdirAll(deep, 0755))
	req.NoError(os.WriteFile(filepath.Join(tempDir, "a", "jsconfig.json"), []byte("{}"), 0644))
	req.NoError(os.WriteFile(filepath.Join(tempDir, "tsconfig.json"), []byte("{}"), 0644))

	path, ok := FindUp(deep, "tsconfig.json", "jsconfig.json")
	req.True(ok)
	req.Equal(filepath.Join(tempDir, "a", "jsconfig.json"), path)

	// A directory with the searched name is not a match
	req.NoError(os.Mkdir(filepath.Join(deep, "tsconfig.json"), 0755))
	path, ok = FindUp(deep, "tsconfig.json")
	req.True(ok)
	req.Equal(filepath.Join(tempDir, "tsconfig.json"), path)
}
