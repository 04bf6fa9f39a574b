package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	PackageManifest = "package.json"
	nodeModulesDir  = "node_modules"
)

// FindUp returns the path of the first file named one of names in dir or one of its parents.
func FindUp(dir string, names ...string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range names {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// GetPackageName returns the name of the package that owns filePath, from the nearest
// package.json that declares one, or inferred from a node_modules path
func GetPackageName(filePath string) string {
	dir := filepath.Dir(filePath)
	for {
		manifest, ok := FindUp(dir, PackageManifest)
		if !ok {
			break
		}
		if name := readPackageName(manifest); name != "" {
			return name
		}
		// Nameless manifests (workspace roots, private fixtures) do not stop the search
		dir = filepath.Dir(filepath.Dir(manifest))
		if dir == filepath.Dir(manifest) {
			break
		}
	}

	// Fallback: infer from node_modules layout
	slashed := filepath.ToSlash(filePath)
	if i := strings.LastIndex(slashed, "/"+nodeModulesDir+"/"); i >= 0 {
		parts := strings.Split(slashed[i+len(nodeModulesDir)+2:], "/")
		if strings.HasPrefix(parts[0], "@") && len(parts) >= 3 {
			return parts[0] + "/" + parts[1]
		}
		if !strings.HasPrefix(parts[0], "@") && len(parts) >= 2 {
			return parts[0]
		}
	}
	return ""
}

func readPackageName(manifest string) string {
	content, err := os.ReadFile(manifest)
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return ""
	}
	return strings.TrimSpace(pkg.Name)
}
