package std

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStandardPackage(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name       string
		importPath string
		expected   bool
	}{
		{"standard package - fs", "fs", true},
		{"standard package - fs/promises", "fs/promises", true},
		{"standard package - node scheme", "node:path", true},
		{"scheme only package", "node:test", true},
		{"scheme only package without scheme", "test", false},
		{"npm package", "react", false},
		{"scoped package", "@types/node", false},
		{"relative path", "./fs", false},
		{"empty string", "", false},
		{"unknown node scheme", "node:nothing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsStandardPackage(tt.importPath)
			req.Equal(tt.expected, result, "IsStandardPackage(%q)", tt.importPath)
		})
	}
}

func TestStandardPackagesMapNotEmpty(t *testing.T) {
	req := require.New(t)
	req.NotEmpty(StandardPackages, "StandardPackages map should not be empty")

	// Check that some well-known modules are present
	expectedPackages := []string{"fs", "path", "os", "http", "crypto", "child_process"}
	for _, pkg := range expectedPackages {
		req.True(StandardPackages[pkg], "Expected standard package %q not found in StandardPackages map", pkg)
	}
}

func TestIsSchemeQualified(t *testing.T) {
	req := require.New(t)
	req.True(IsSchemeQualified("node:fs"))
	req.False(IsSchemeQualified("fs"))
}
