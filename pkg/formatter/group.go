package formatter

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
)

// Arrange buckets statements by group, merges duplicates when enabled and sorts each bucket.
// Empty groups are omitted. The input statements are not modified.
func Arrange(stmts []*ImportStatement, cfg config.Config) ([]Group, error) {
	classifier := NewClassifier(cfg)

	work := make([]*ImportStatement, 0, len(stmts))
	for _, s := range stmts {
		c := *s
		c.Bindings = append([]syntax.Binding(nil), s.Bindings...)
		c.Group = classifier.Classify(c.Specifier)
		canonicalize(&c)
		work = append(work, &c)
	}

	if cfg.Merge {
		var err error
		if work, err = merge(work); err != nil {
			return nil, err
		}
	}

	buckets := make([][]*ImportStatement, len(cfg.Groups))
	for _, s := range work {
		buckets[s.Group] = append(buckets[s.Group], s)
	}

	less := comparator(cfg)
	var groups []Group
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		sort.SliceStable(bucket, func(a, b int) bool {
			return less(bucket[a], bucket[b])
		})
		groups = append(groups, Group{Name: cfg.Groups[i].Name, Statements: bucket})
	}
	return groups, nil
}

// comparator returns the strict ordering of statements within a group. Statements the ordering
// considers equal keep their source order.
func comparator(cfg config.Config) func(a, b *ImportStatement) bool {
	key := func(s *ImportStatement) string { return s.Specifier }
	fold := false
	switch cfg.Comparator {
	case config.BySpecifierFold:
		fold = true
	case config.ByBinding:
		key = bindingKey
	}

	return func(a, b *ImportStatement) bool {
		ka, kb := key(a), key(b)
		if fold {
			if la, lb := strings.ToLower(ka), strings.ToLower(kb); la != lb {
				return la < lb
			}
		}
		if ka != kb {
			return ka < kb
		}
		if a.Specifier != b.Specifier {
			return a.Specifier < b.Specifier
		}
		if cfg.TypeOnlyLast && a.TypeOnly != b.TypeOnly {
			return !a.TypeOnly
		}
		return a.Index < b.Index
	}
}

// bindingKey is the first local name a statement binds, or its specifier for side-effect imports.
func bindingKey(s *ImportStatement) string {
	if len(s.Bindings) == 0 {
		return s.Specifier
	}
	return s.Bindings[0].Local()
}

// canonicalize orders bindings as default, namespace, then named bindings sorted by name.
// Statements whose binding order changes are re-rendered.
func canonicalize(s *ImportStatement) {
	if s.Verbatim || len(s.Bindings) < 2 {
		return
	}
	sorted := append([]syntax.Binding(nil), s.Bindings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bindingLess(sorted[i], sorted[j])
	})
	for i := range sorted {
		if sorted[i] != s.Bindings[i] {
			s.Bindings = sorted
			s.modified = true
			return
		}
	}
}

func bindingLess(a, b syntax.Binding) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Alias < b.Alias
}

type mergeKey struct {
	specifier  string
	typeOnly   bool
	attributes string
}

// merge combines statements importing the same specifier with the same type-only flag and
// attributes. A side-effect import is absorbed by a value import of its specifier. Statements
// that carry inner comments are never merged.
func merge(stmts []*ImportStatement) ([]*ImportStatement, error) {
	merged := make(map[mergeKey]*ImportStatement)
	var out []*ImportStatement

	for _, s := range stmts {
		if s.Verbatim || s.SideEffect {
			continue
		}
		key := mergeKey{specifier: s.Specifier, typeOnly: s.TypeOnly, attributes: s.Attributes}
		target, ok := merged[key]
		if !ok {
			merged[key] = s
			continue
		}
		if err := combine(target, s); err != nil {
			return nil, err
		}
		s.Group = -1
	}

	for _, s := range stmts {
		if !s.SideEffect || s.Verbatim {
			continue
		}
		key := mergeKey{specifier: s.Specifier, attributes: s.Attributes}
		if target, ok := merged[key]; ok && hasValueBinding(target) {
			target.Leading += s.Leading
			target.Trailing = joinTrailing(target.Trailing, s.Trailing)
			target.Index = min(target.Index, s.Index)
			target.modified = true
			s.Group = -1
			continue
		}
		// Repeated side-effect imports of one specifier collapse to the first.
		if first, ok := merged[key]; ok && first.SideEffect {
			first.Leading += s.Leading
			first.Trailing = joinTrailing(first.Trailing, s.Trailing)
			s.Group = -1
			continue
		}
		if _, ok := merged[key]; !ok {
			merged[key] = s
		}
	}

	for _, s := range stmts {
		if s.Group < 0 {
			continue
		}
		out = append(out, split(s)...)
	}
	return out, nil
}

// combine folds the bindings and comments of s into target.
func combine(target, s *ImportStatement) error {
	for _, b := range s.Bindings {
		switch b.Kind {
		case syntax.Default, syntax.Namespace:
			if existing, ok := find(target.Bindings, b.Kind); ok {
				if existing.Name != b.Name {
					return &errors.ConflictError{
						Specifier: target.Specifier,
						Bindings:  []string{existing.Name, b.Name},
					}
				}
				continue
			}
			target.Bindings = append(target.Bindings, b)
		case syntax.Named:
			target.Bindings = addNamed(target.Bindings, b)
		}
	}

	target.Leading += s.Leading
	target.Trailing = joinTrailing(target.Trailing, s.Trailing)
	target.modified = true
	sort.SliceStable(target.Bindings, func(i, j int) bool {
		return bindingLess(target.Bindings[i], target.Bindings[j])
	})
	return nil
}

func find(bindings []syntax.Binding, kind syntax.BindingKind) (syntax.Binding, bool) {
	for _, b := range bindings {
		if b.Kind == kind {
			return b, true
		}
	}
	return syntax.Binding{}, false
}

// addNamed adds a named binding unless the same name and alias is already bound. A value
// binding supersedes a type-only binding of the same name.
func addNamed(bindings []syntax.Binding, b syntax.Binding) []syntax.Binding {
	for i, existing := range bindings {
		if existing.Kind == syntax.Named && existing.Name == b.Name && existing.Alias == b.Alias {
			if existing.TypeOnly && !b.TypeOnly {
				bindings[i].TypeOnly = false
			}
			return bindings
		}
	}
	return append(bindings, b)
}

func hasValueBinding(s *ImportStatement) bool {
	if s.TypeOnly {
		return false
	}
	for _, b := range s.Bindings {
		if !b.TypeOnly {
			return true
		}
	}
	return false
}

// split separates named bindings from a namespace binding; the two cannot share a clause.
func split(s *ImportStatement) []*ImportStatement {
	if _, ok := find(s.Bindings, syntax.Namespace); !ok {
		return []*ImportStatement{s}
	}
	var head, named []syntax.Binding
	for _, b := range s.Bindings {
		if b.Kind == syntax.Named {
			named = append(named, b)
		} else {
			head = append(head, b)
		}
	}
	if len(named) == 0 {
		return []*ImportStatement{s}
	}

	rest := *s
	rest.Bindings = named
	rest.Leading = ""
	rest.Trailing = ""
	rest.modified = true

	s.Bindings = head
	s.modified = true
	return []*ImportStatement{s, &rest}
}

func joinTrailing(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + strings.TrimLeft(b, " \t")
}
