// Package project reads the compiler options of a JavaScript or TypeScript project that affect
// how imports are classified: path aliases, module resolution mode and the package's own name.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/jsonc"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/utils"
)

// ConfigFiles are the project files searched for, in order of preference.
var ConfigFiles = []string{"tsconfig.json", "jsconfig.json"}

const (
	defaultCacheSize = 256
	maxExtendsDepth  = 16
)

// Options are the project options relevant to import classification.
type Options struct {
	Path             string // project file the options were read from
	Aliases          []string
	ModuleResolution string
	PackageName      string
}

// Layer returns the options as a config layer. Options that were not found are left unset.
func (o Options) Layer() config.Layer {
	var l config.Layer
	if o.Aliases != nil {
		l.Aliases = o.Aliases
	}
	if o.ModuleResolution != "" {
		l.ModuleResolution = config.String(o.ModuleResolution)
	}
	if o.PackageName != "" {
		l.PackageName = config.String(o.PackageName)
	}
	return l
}

type tsconfig struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions struct {
		Paths            map[string][]string `json:"paths"`
		ModuleResolution string              `json:"moduleResolution"`
	} `json:"compilerOptions"`
}

func (c tsconfig) extends() []string {
	if len(c.Extends) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(c.Extends, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(c.Extends, &many); err == nil {
		return many
	}
	return nil
}

// Load reads a project file, following relative "extends" references. Options of the extending
// file override those of the files it extends.
func Load(path string) (Options, error) {
	opts, err := load(path, 0)
	if err != nil {
		return Options{}, err
	}
	opts.Path = path
	return opts, nil
}

func load(path string, depth int) (Options, error) {
	if depth > maxExtendsDepth {
		return Options{}, errors.Errorf("%s: extends chain deeper than %d", path, maxExtendsDepth)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrapf(err, "%s %s", errors.ErrMsgFailedToLoadProjectFile, path)
	}
	var cfg tsconfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return Options{}, errors.Wrapf(err, "%s %s", errors.ErrMsgFailedToLoadProjectFile, path)
	}

	var opts Options
	for _, base := range cfg.extends() {
		if !isPathReference(base) {
			// package presets carry no path mappings of this project
			continue
		}
		ref := base
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(filepath.Dir(path), ref)
		}
		if filepath.Ext(ref) != ".json" {
			ref += ".json"
		}
		parent, err := load(ref, depth+1)
		if err != nil {
			return Options{}, err
		}
		opts = overlay(opts, parent)
	}

	own := Options{ModuleResolution: strings.ToLower(cfg.CompilerOptions.ModuleResolution)}
	if cfg.CompilerOptions.Paths != nil {
		own.Aliases = make([]string, 0, len(cfg.CompilerOptions.Paths))
		for key := range cfg.CompilerOptions.Paths {
			own.Aliases = append(own.Aliases, key)
		}
		sort.Strings(own.Aliases)
	}
	return overlay(opts, own), nil
}

func overlay(base, override Options) Options {
	if override.Aliases != nil {
		base.Aliases = override.Aliases
	}
	if override.ModuleResolution != "" {
		base.ModuleResolution = override.ModuleResolution
	}
	return base
}

func isPathReference(ref string) bool {
	return strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || filepath.IsAbs(ref)
}

// Loader finds and caches the project options of directories. It is safe for concurrent use.
type Loader struct {
	cache *lru.Cache[string, Options]
}

// NewLoader creates a Loader.
func NewLoader() (*Loader, error) {
	cache, err := lru.New[string, Options](defaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create project cache")
	}
	return &Loader{cache: cache}, nil
}

// Lookup returns the options of the nearest project file at or above dir, together with the
// name of the package that contains dir. A directory outside any project yields empty options.
func (l *Loader) Lookup(dir string) (Options, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Options{}, errors.Wrap(err, "resolve directory")
	}
	if opts, ok := l.cache.Get(abs); ok {
		return opts, nil
	}

	var opts Options
	if path, ok := utils.FindUp(abs, ConfigFiles...); ok {
		if opts, err = Load(path); err != nil {
			return Options{}, err
		}
	}
	opts.PackageName = utils.GetPackageName(filepath.Join(abs, utils.PackageManifest))

	l.cache.Add(abs, opts)
	return opts, nil
}
