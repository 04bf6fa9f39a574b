// Package config holds the typed import sorting rules and the layering rules used to combine
// project defaults, nested directory configs and per-file overrides into one Config.
//
// A Layer is a partial configuration: every field is optional. Layers combine with Merge, which is
// right-biased per field and associative. Resolve folds any sequence of layers over the built-in
// defaults and validates the result, so the returned Config is always fully populated.
package config

import (
	"fmt"
	"sort"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
)

// Comparator selects the intra-group ordering key.
type Comparator string

const (
	// BySpecifier orders by module specifier, case-sensitively.
	BySpecifier Comparator = "specifier"
	// BySpecifierFold orders by module specifier ignoring case, then case-sensitively.
	BySpecifierFold Comparator = "specifier-ci"
	// ByBinding orders by the first bound name; side-effect imports fall back to the specifier.
	ByBinding Comparator = "binding"
)

// Quote is the preferred quote character for module specifiers.
type Quote string

const (
	QuoteSingle   Quote = "single"
	QuoteDouble   Quote = "double"
	QuotePreserve Quote = "preserve"
)

// Semicolons controls statement terminators of re-rendered imports.
type Semicolons string

const (
	SemicolonsAlways   Semicolons = "always"
	SemicolonsNever    Semicolons = "never"
	SemicolonsPreserve Semicolons = "preserve"
)

// EOL is the line ending style.
type EOL string

const (
	EOLLF   EOL = "lf"
	EOLCRLF EOL = "crlf"
	EOLAuto EOL = "auto"
)

// Sequence returns the byte sequence of a concrete line ending. Auto maps to LF.
func (e EOL) Sequence() string {
	if e == EOLCRLF {
		return "\r\n"
	}
	return "\n"
}

// GroupSpec is a group definition as it appears in a config file.
type GroupSpec struct {
	Name     string   `mapstructure:"name" yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns" toml:"patterns" json:"patterns"`
	Position *int     `mapstructure:"position" yaml:"position,omitempty" toml:"position,omitempty" json:"position,omitempty"`
}

// LineRange is an inclusive, 1-based range of source lines.
type LineRange struct {
	Start int `yaml:"start" toml:"start" json:"start"`
	End   int `yaml:"end" toml:"end" json:"end"`
}

// Overlaps reports whether r and o share at least one line.
func (r LineRange) Overlaps(o LineRange) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// Layer is a partial configuration. Nil fields are inherited from the layer below.
type Layer struct {
	Root             *bool       `mapstructure:"root" yaml:"root,omitempty" toml:"root,omitempty" json:"root,omitempty"`
	Groups           []GroupSpec `mapstructure:"groups" yaml:"groups,omitempty" toml:"groups,omitempty" json:"groups,omitempty"`
	ExtendGroups     *bool       `mapstructure:"extendGroups" yaml:"extendGroups,omitempty" toml:"extendGroups,omitempty" json:"extendGroups,omitempty"`
	Comparator       *Comparator `mapstructure:"comparator" yaml:"comparator,omitempty" toml:"comparator,omitempty" json:"comparator,omitempty"`
	BlankLines       *int        `mapstructure:"blankLines" yaml:"blankLines,omitempty" toml:"blankLines,omitempty" json:"blankLines,omitempty"`
	Merge            *bool       `mapstructure:"merge" yaml:"merge,omitempty" toml:"merge,omitempty" json:"merge,omitempty"`
	TypeOnlyLast     *bool       `mapstructure:"typeOnlyLast" yaml:"typeOnlyLast,omitempty" toml:"typeOnlyLast,omitempty" json:"typeOnlyLast,omitempty"`
	Quote            *Quote      `mapstructure:"quote" yaml:"quote,omitempty" toml:"quote,omitempty" json:"quote,omitempty"`
	Semicolons       *Semicolons `mapstructure:"semicolons" yaml:"semicolons,omitempty" toml:"semicolons,omitempty" json:"semicolons,omitempty"`
	BracketSpacing   *bool       `mapstructure:"bracketSpacing" yaml:"bracketSpacing,omitempty" toml:"bracketSpacing,omitempty" json:"bracketSpacing,omitempty"`
	EOL              *EOL        `mapstructure:"eol" yaml:"eol,omitempty" toml:"eol,omitempty" json:"eol,omitempty"`
	DetachBlankLines *int        `mapstructure:"detachBlankLines" yaml:"detachBlankLines,omitempty" toml:"detachBlankLines,omitempty" json:"detachBlankLines,omitempty"`

	// Resolved project options.
	Aliases          []string `mapstructure:"aliases" yaml:"aliases,omitempty" toml:"aliases,omitempty" json:"aliases,omitempty"`
	ModuleResolution *string  `mapstructure:"moduleResolution" yaml:"moduleResolution,omitempty" toml:"moduleResolution,omitempty" json:"moduleResolution,omitempty"`
	PackageName      *string  `mapstructure:"packageName" yaml:"packageName,omitempty" toml:"packageName,omitempty" json:"packageName,omitempty"`

	// Resolved linter exceptions; never read from config files.
	Exclusions []LineRange `mapstructure:"-" yaml:"-" toml:"-" json:"-"`
}

// Group is a validated group definition with compiled matchers.
type Group struct {
	Name     string
	Position int
	Matchers []Matcher
}

// CatchAll reports whether the group receives otherwise unmatched imports.
func (g Group) CatchAll() bool {
	for _, m := range g.Matchers {
		if m.Kind == MatchAll {
			return true
		}
	}
	return false
}

// Config is a fully populated configuration.
type Config struct {
	Groups           []Group
	Comparator       Comparator
	BlankLines       int
	Merge            bool
	TypeOnlyLast     bool
	Quote            Quote
	Semicolons       Semicolons
	BracketSpacing   bool
	EOL              EOL
	DetachBlankLines int
	Aliases          []string
	ModuleResolution string
	PackageName      string
	Exclusions       []LineRange
}

// DefaultLayer returns the built-in base layer. Every field is set.
func DefaultLayer() Layer {
	return Layer{
		Root: Bool(false),
		Groups: []GroupSpec{
			{Name: "builtin", Patterns: []string{PatternBuiltin}, Position: Int(0)},
			{Name: "external", Patterns: []string{PatternAll}, Position: Int(1)},
			{Name: "alias", Patterns: []string{PatternAlias}, Position: Int(2)},
			{Name: "relative", Patterns: []string{PatternRelative}, Position: Int(3)},
		},
		ExtendGroups:     Bool(false),
		Comparator:       Ptr(BySpecifier),
		BlankLines:       Int(1),
		Merge:            Bool(true),
		TypeOnlyLast:     Bool(true),
		Quote:            Ptr(QuotePreserve),
		Semicolons:       Ptr(SemicolonsPreserve),
		BracketSpacing:   Bool(false),
		EOL:              Ptr(EOLAuto),
		DetachBlankLines: Int(2),
		Aliases:          []string{},
		ModuleResolution: String(""),
		PackageName:      String(""),
		Exclusions:       []LineRange{},
	}
}

// Default returns the resolved built-in configuration.
func Default() Config {
	cfg, err := Resolve()
	if err != nil {
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return cfg
}

// Merge combines two layers. Fields set in override win; list fields are replaced wholesale,
// except groups when override sets extendGroups, which appends override's groups to base's.
func Merge(base, override Layer) Layer {
	out := base
	if override.Root != nil {
		out.Root = override.Root
	}
	if override.Groups != nil {
		if isTrue(override.ExtendGroups) {
			groups := make([]GroupSpec, 0, len(base.Groups)+len(override.Groups))
			groups = append(groups, base.Groups...)
			out.Groups = append(groups, override.Groups...)
			if base.Groups == nil {
				out.ExtendGroups = override.ExtendGroups
			}
		} else {
			out.Groups = override.Groups
			out.ExtendGroups = override.ExtendGroups
		}
	}
	if override.Comparator != nil {
		out.Comparator = override.Comparator
	}
	if override.BlankLines != nil {
		out.BlankLines = override.BlankLines
	}
	if override.Merge != nil {
		out.Merge = override.Merge
	}
	if override.TypeOnlyLast != nil {
		out.TypeOnlyLast = override.TypeOnlyLast
	}
	if override.Quote != nil {
		out.Quote = override.Quote
	}
	if override.Semicolons != nil {
		out.Semicolons = override.Semicolons
	}
	if override.BracketSpacing != nil {
		out.BracketSpacing = override.BracketSpacing
	}
	if override.EOL != nil {
		out.EOL = override.EOL
	}
	if override.DetachBlankLines != nil {
		out.DetachBlankLines = override.DetachBlankLines
	}
	if override.Aliases != nil {
		out.Aliases = override.Aliases
	}
	if override.ModuleResolution != nil {
		out.ModuleResolution = override.ModuleResolution
	}
	if override.PackageName != nil {
		out.PackageName = override.PackageName
	}
	if override.Exclusions != nil {
		out.Exclusions = override.Exclusions
	}
	return out
}

// MergeAll left-folds Merge over layers starting from the built-in defaults.
func MergeAll(layers ...Layer) Layer {
	out := DefaultLayer()
	for _, l := range layers {
		out = Merge(out, l)
	}
	return out
}

// Resolve merges layers over the built-in defaults and validates the result.
func Resolve(layers ...Layer) (Config, error) {
	return Build(MergeAll(layers...))
}

// Build validates a complete layer and compiles it into a Config.
func Build(l Layer) (Config, error) {
	if l.Comparator == nil || l.BlankLines == nil || l.Merge == nil || l.TypeOnlyLast == nil ||
		l.Quote == nil || l.Semicolons == nil || l.BracketSpacing == nil || l.EOL == nil ||
		l.DetachBlankLines == nil || l.ModuleResolution == nil || l.PackageName == nil {
		return Config{}, &errors.ConfigError{Field: "*", Message: "layer is not complete"}
	}

	cfg := Config{
		Comparator:       *l.Comparator,
		BlankLines:       *l.BlankLines,
		Merge:            *l.Merge,
		TypeOnlyLast:     *l.TypeOnlyLast,
		Quote:            *l.Quote,
		Semicolons:       *l.Semicolons,
		BracketSpacing:   *l.BracketSpacing,
		EOL:              *l.EOL,
		DetachBlankLines: *l.DetachBlankLines,
		Aliases:          append([]string(nil), l.Aliases...),
		ModuleResolution: *l.ModuleResolution,
		PackageName:      *l.PackageName,
		Exclusions:       append([]LineRange(nil), l.Exclusions...),
	}

	if err := Validate(l); err != nil {
		return Config{}, err
	}

	groups, err := buildGroups(l.Groups)
	if err != nil {
		return Config{}, err
	}
	cfg.Groups = groups
	return cfg, nil
}

func buildGroups(specs []GroupSpec) ([]Group, error) {
	groups := make([]Group, 0, len(specs)+1)
	seen := make(map[int]string, len(specs))
	hasCatchAll := false
	for i, spec := range specs {
		pos := i
		if spec.Position != nil {
			pos = *spec.Position
		}
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("group%d", i)
		}
		if other, ok := seen[pos]; ok {
			return nil, &errors.ConfigError{
				Field:   fmt.Sprintf("groups[%d].position", i),
				Message: fmt.Sprintf("position %d already used by group %q", pos, other),
			}
		}
		seen[pos] = name
		if len(spec.Patterns) == 0 {
			return nil, &errors.ConfigError{Field: fmt.Sprintf("groups[%d].patterns", i), Message: "group has no patterns"}
		}

		g := Group{Name: name, Position: pos}
		for j, p := range spec.Patterns {
			m, err := ParsePattern(p)
			if err != nil {
				return nil, &errors.ConfigError{Field: fmt.Sprintf("groups[%d].patterns[%d]", i, j), Message: err.Error()}
			}
			g.Matchers = append(g.Matchers, m)
		}
		if g.CatchAll() {
			hasCatchAll = true
		}
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Position < groups[j].Position
	})

	if !hasCatchAll {
		pos := 0
		if len(groups) > 0 {
			pos = groups[len(groups)-1].Position + 1
		}
		groups = append(groups, Group{Name: "other", Position: pos, Matchers: []Matcher{{Kind: MatchAll}}})
	}
	return groups, nil
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func isTrue(b *bool) bool {
	return b != nil && *b
}
