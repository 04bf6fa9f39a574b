package config

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/viper"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
)

// ConfigName is the base name of config files; viper adds the extension (.yaml, .yml, .json, .toml).
const ConfigName = ".tigrc"

const defaultCacheSize = 512

// dirLayer is the config file found directly in one directory.
type dirLayer struct {
	layer Layer
	path  string // empty when the directory has no config file
}

// Loader discovers config files and decodes them into layers. It is safe for concurrent use.
type Loader struct {
	strict bool
	cache  *lru.Cache[string, dirLayer]
}

// NewLoader creates a Loader. In strict mode unknown keys in config files are rejected.
func NewLoader(strict bool) (*Loader, error) {
	cache, err := lru.New[string, dirLayer](defaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create config cache")
	}
	return &Loader{strict: strict, cache: cache}, nil
}

// LoadFile decodes a single config file.
func (l *Loader) LoadFile(path string) (Layer, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Layer{}, errors.Wrapf(err, "%s %s", errors.ErrMsgFailedToLoadConfigFile, path)
	}
	return l.decode(v, path)
}

// Discover returns the layers that apply to files in dir, outermost first, together with the
// files they were read from. Discovery walks up from dir and stops at a layer marked root.
func (l *Loader) Discover(dir string) ([]Layer, []string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolve directory")
	}

	var layers []Layer
	var paths []string
	for {
		entry, err := l.lookup(abs)
		if err != nil {
			return nil, nil, err
		}
		if entry.path != "" {
			layers = append(layers, entry.layer)
			paths = append(paths, entry.path)
			if isTrue(entry.layer.Root) {
				break
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}

	for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
		layers[i], layers[j] = layers[j], layers[i]
		paths[i], paths[j] = paths[j], paths[i]
	}
	return layers, paths, nil
}

func (l *Loader) lookup(dir string) (dirLayer, error) {
	if entry, ok := l.cache.Get(dir); ok {
		return entry, nil
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(dir)

	var entry dirLayer
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return dirLayer{}, errors.Wrapf(err, "%s in %s", errors.ErrMsgFailedToLoadConfigFile, dir)
		}
	} else {
		entry.path = v.ConfigFileUsed()
		entry.layer, err = l.decode(v, entry.path)
		if err != nil {
			return dirLayer{}, err
		}
	}

	l.cache.Add(dir, entry)
	return entry, nil
}

func (l *Loader) decode(v *viper.Viper, path string) (Layer, error) {
	var layer Layer
	var err error
	if l.strict {
		err = v.UnmarshalExact(&layer)
	} else {
		err = v.Unmarshal(&layer)
	}
	if err != nil {
		return Layer{}, &errors.ConfigError{Field: path, Message: err.Error()}
	}
	if err := Validate(layer); err != nil {
		return Layer{}, errors.Wrap(err, path)
	}
	return layer, nil
}

// Validate checks the fields a partial layer sets. Cross-field checks such as unique group
// positions happen in Build, once the layers are merged.
func Validate(l Layer) error {
	if l.Comparator != nil {
		switch *l.Comparator {
		case BySpecifier, BySpecifierFold, ByBinding:
		default:
			return &errors.ConfigError{Field: "comparator", Message: fmt.Sprintf("unknown comparator %q", *l.Comparator)}
		}
	}
	if l.Quote != nil {
		switch *l.Quote {
		case QuoteSingle, QuoteDouble, QuotePreserve:
		default:
			return &errors.ConfigError{Field: "quote", Message: fmt.Sprintf("unknown quote style %q", *l.Quote)}
		}
	}
	if l.Semicolons != nil {
		switch *l.Semicolons {
		case SemicolonsAlways, SemicolonsNever, SemicolonsPreserve:
		default:
			return &errors.ConfigError{Field: "semicolons", Message: fmt.Sprintf("unknown semicolon policy %q", *l.Semicolons)}
		}
	}
	if l.EOL != nil {
		switch *l.EOL {
		case EOLLF, EOLCRLF, EOLAuto:
		default:
			return &errors.ConfigError{Field: "eol", Message: fmt.Sprintf("unknown end of line %q", *l.EOL)}
		}
	}
	if l.BlankLines != nil && *l.BlankLines < 0 {
		return &errors.ConfigError{Field: "blankLines", Message: "must not be negative"}
	}
	if l.DetachBlankLines != nil && *l.DetachBlankLines < 1 {
		return &errors.ConfigError{Field: "detachBlankLines", Message: "must be at least 1"}
	}
	for i, g := range l.Groups {
		for j, p := range g.Patterns {
			if _, err := ParsePattern(p); err != nil {
				return &errors.ConfigError{Field: fmt.Sprintf("groups[%d].patterns[%d]", i, j), Message: err.Error()}
			}
		}
	}
	return nil
}
