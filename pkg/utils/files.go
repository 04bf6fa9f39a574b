package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions lists the file extensions of JavaScript and TypeScript sources.
var SourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"vendor":           true,
	"bower_components": true,
}

// IsSourceFile checks if a file is a JavaScript or TypeScript source file (minified bundles excluded)
func IsSourceFile(filename string) bool {
	base := filepath.Base(filename)
	if strings.HasSuffix(base, ".min.js") {
		return false
	}
	return SourceExtensions[strings.ToLower(filepath.Ext(base))]
}

// FindSourceFiles recursively finds all source files in a directory
func FindSourceFiles(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip dependency directories and hidden directories (but not the root directory)
		if info.IsDir() && path != root {
			name := filepath.Base(path)
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && IsSourceFile(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
