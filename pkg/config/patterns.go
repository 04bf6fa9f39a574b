package config

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchKind identifies a group matcher predicate.
type MatchKind int

const (
	MatchAll MatchKind = iota
	MatchBuiltin
	MatchScoped
	MatchRelative
	MatchAlias
	MatchPackage
	MatchSelf
	MatchExact
	MatchPrefix
	MatchRegex
)

// Pattern keywords accepted in group definitions.
const (
	PatternAll      = "*"
	PatternBuiltin  = "builtin"
	PatternScoped   = "scoped"
	PatternRelative = "relative"
	PatternAlias    = "alias"
	PatternPackage  = "package"
	PatternSelf     = "self"

	prefixExact  = "exact:"
	prefixPrefix = "prefix:"
	prefixRegex  = "regex:"
)

// Matcher is one parsed group pattern.
type Matcher struct {
	Kind  MatchKind
	Value string
	Re    *regexp.Regexp
}

// String renders the matcher back to its pattern syntax.
func (m Matcher) String() string {
	switch m.Kind {
	case MatchBuiltin:
		return PatternBuiltin
	case MatchScoped:
		return PatternScoped
	case MatchRelative:
		return PatternRelative
	case MatchAlias:
		return PatternAlias
	case MatchPackage:
		return PatternPackage
	case MatchSelf:
		return PatternSelf
	case MatchExact:
		return prefixExact + m.Value
	case MatchPrefix:
		return prefixPrefix + m.Value
	case MatchRegex:
		return prefixRegex + m.Value
	default:
		return PatternAll
	}
}

// ParsePattern parses a group pattern.
func ParsePattern(p string) (Matcher, error) {
	switch p {
	case PatternAll:
		return Matcher{Kind: MatchAll}, nil
	case PatternBuiltin:
		return Matcher{Kind: MatchBuiltin}, nil
	case PatternScoped:
		return Matcher{Kind: MatchScoped}, nil
	case PatternRelative:
		return Matcher{Kind: MatchRelative}, nil
	case PatternAlias:
		return Matcher{Kind: MatchAlias}, nil
	case PatternPackage:
		return Matcher{Kind: MatchPackage}, nil
	case PatternSelf:
		return Matcher{Kind: MatchSelf}, nil
	}

	switch {
	case strings.HasPrefix(p, prefixExact):
		v := strings.TrimPrefix(p, prefixExact)
		if v == "" {
			return Matcher{}, fmt.Errorf("empty exact pattern")
		}
		return Matcher{Kind: MatchExact, Value: v}, nil
	case strings.HasPrefix(p, prefixPrefix):
		v := strings.TrimPrefix(p, prefixPrefix)
		if v == "" {
			return Matcher{}, fmt.Errorf("empty prefix pattern")
		}
		return Matcher{Kind: MatchPrefix, Value: v}, nil
	case strings.HasPrefix(p, prefixRegex):
		v := strings.TrimPrefix(p, prefixRegex)
		re, err := regexp.Compile(v)
		if err != nil {
			return Matcher{}, fmt.Errorf("invalid regex %q: %v", v, err)
		}
		return Matcher{Kind: MatchRegex, Value: v, Re: re}, nil
	}
	return Matcher{}, fmt.Errorf("unknown pattern %q", p)
}
