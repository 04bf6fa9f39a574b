package formatter

import (
	"strings"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/std"
)

// classicResolution disables bare built-in names; only node:-qualified specifiers count.
const classicResolution = "classic"

// aliasPattern is a path mapping key such as "@/*" or "~utils".
type aliasPattern struct {
	prefix   string
	suffix   string
	wildcard bool
}

func parseAlias(key string) aliasPattern {
	if i := strings.IndexByte(key, '*'); i >= 0 {
		return aliasPattern{prefix: key[:i], suffix: key[i+1:], wildcard: true}
	}
	return aliasPattern{prefix: key}
}

func (a aliasPattern) match(specifier string) bool {
	if !a.wildcard {
		return specifier == a.prefix
	}
	return len(specifier) >= len(a.prefix)+len(a.suffix) &&
		strings.HasPrefix(specifier, a.prefix) &&
		strings.HasSuffix(specifier, a.suffix)
}

// Classifier assigns import specifiers to groups.
type Classifier struct {
	groups      []config.Group
	aliases     []aliasPattern
	bareBuiltin bool
	self        string
}

// NewClassifier creates a Classifier for the groups and project options of cfg.
func NewClassifier(cfg config.Config) *Classifier {
	c := &Classifier{
		groups:      cfg.Groups,
		bareBuiltin: !strings.EqualFold(cfg.ModuleResolution, classicResolution),
		self:        cfg.PackageName,
	}
	for _, key := range cfg.Aliases {
		c.aliases = append(c.aliases, parseAlias(key))
	}
	return c
}

// Classify returns the index of the group a specifier belongs to. Specific patterns are tried in
// group order and the first match wins; the catch-all group only receives what nothing matched.
func (c *Classifier) Classify(specifier string) int {
	for i, g := range c.groups {
		for _, m := range g.Matchers {
			if m.Kind != config.MatchAll && c.match(m, specifier) {
				return i
			}
		}
	}
	for i, g := range c.groups {
		if g.CatchAll() {
			return i
		}
	}
	return len(c.groups) - 1
}

func (c *Classifier) match(m config.Matcher, specifier string) bool {
	switch m.Kind {
	case config.MatchBuiltin:
		return c.isBuiltin(specifier)
	case config.MatchScoped:
		return isScoped(specifier)
	case config.MatchRelative:
		return isRelative(specifier)
	case config.MatchAlias:
		return c.isAlias(specifier)
	case config.MatchPackage:
		return c.isPackage(specifier)
	case config.MatchSelf:
		return c.isSelf(specifier)
	case config.MatchExact:
		return specifier == m.Value
	case config.MatchPrefix:
		return strings.HasPrefix(specifier, m.Value)
	case config.MatchRegex:
		return m.Re != nil && m.Re.MatchString(specifier)
	}
	return false
}

func (c *Classifier) isBuiltin(specifier string) bool {
	if !std.IsStandardPackage(specifier) {
		return false
	}
	return c.bareBuiltin || std.IsSchemeQualified(specifier)
}

func (c *Classifier) isAlias(specifier string) bool {
	for _, a := range c.aliases {
		if a.match(specifier) {
			return true
		}
	}
	return false
}

func (c *Classifier) isSelf(specifier string) bool {
	return c.self != "" && (specifier == c.self || strings.HasPrefix(specifier, c.self+"/"))
}

// isPackage matches bare specifiers resolved from installed packages.
func (c *Classifier) isPackage(specifier string) bool {
	return specifier != "" &&
		!isRelative(specifier) &&
		!strings.HasPrefix(specifier, "/") &&
		!strings.Contains(specifier, ":") &&
		!c.isBuiltin(specifier) &&
		!c.isAlias(specifier)
}

// isScoped matches @scope/name specifiers.
func isScoped(specifier string) bool {
	if !strings.HasPrefix(specifier, "@") {
		return false
	}
	slash := strings.IndexByte(specifier, '/')
	return slash > 1 && slash < len(specifier)-1
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
