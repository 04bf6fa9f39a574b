// Package lint finds the source ranges where an author has switched off import ordering lint rules
// with eslint directive comments. Imports in those ranges are left alone.
package lint

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
)

// OrderingRules are the lint rules whose suppression also suppresses import reordering.
var OrderingRules = map[string]bool{
	"sort-imports":               true,
	"import/order":               true,
	"import/first":               true,
	"import/no-duplicates":       true,
	"import-x/order":             true,
	"simple-import-sort/imports": true,
	"perfectionist/sort-imports": true,
}

var directive = regexp.MustCompile(`(?://|/\*)\s*eslint-(disable-next-line|disable-line|disable|enable)\b([^\n]*)`)

const maxLineSize = 4 * 1024 * 1024

// Scan returns the 1-based line ranges covered by directives that disable every rule or one of
// OrderingRules. An unterminated eslint-disable block runs to the end of the file.
func Scan(src []byte) []config.LineRange {
	var (
		ranges []config.LineRange
		open   int
		line   int
	)

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line++
		for _, m := range directive.FindAllStringSubmatch(scanner.Text(), -1) {
			if !relevant(m[2]) {
				continue
			}
			switch m[1] {
			case "disable-next-line":
				ranges = append(ranges, config.LineRange{Start: line + 1, End: line + 1})
			case "disable-line":
				ranges = append(ranges, config.LineRange{Start: line, End: line})
			case "disable":
				if open == 0 {
					open = line
				}
			case "enable":
				if open > 0 {
					ranges = append(ranges, config.LineRange{Start: open, End: line})
					open = 0
				}
			}
		}
	}
	if open > 0 {
		ranges = append(ranges, config.LineRange{Start: open, End: max(line, open)})
	}
	return ranges
}

// Layer returns the suppressed ranges of src as a config layer.
func Layer(src []byte) config.Layer {
	ranges := Scan(src)
	if ranges == nil {
		ranges = []config.LineRange{}
	}
	return config.Layer{Exclusions: ranges}
}

// relevant reports whether a directive's rule list is empty or names an ordering rule.
func relevant(rest string) bool {
	if i := strings.Index(rest, "*/"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "--"); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return true
	}
	for _, rule := range strings.Split(rest, ",") {
		if OrderingRules[strings.TrimSpace(rule)] {
			return true
		}
	}
	return false
}
