package formatter

import (
	"bytes"
	"sort"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
)

// lineIndex holds the byte offset at which each line starts.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range src {
		if c == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// line returns the 1-based line containing byte offset off.
func (li lineIndex) line(off int) int {
	return sort.Search(len(li), func(i int) bool { return li[i] > off })
}

// blankLines counts the empty lines in the whitespace between two byte offsets.
func blankLines(src []byte, from, to int) int {
	if n := bytes.Count(src[from:to], []byte("\n")); n > 1 {
		return n - 1
	}
	return 0
}

// Extract locates the import region: the run of static imports and their comments that follows
// the prologue (shebang and directives). The region ends at the first other statement.
//
// Comments between imports attach to the import below them. A comment on the same line as an
// import's end is that import's trailing comment. Comments above the first import attach to it
// unless detach or more blank lines separate them, in which case they stay with the file header.
func Extract(src []byte, tree *syntax.Tree, detach int) (*Region, error) {
	nodes := tree.Nodes

	first := 0
	for i, n := range nodes {
		if n.Kind == syntax.KindHashBang || n.Kind == syntax.KindDirective {
			first = i + 1
			continue
		}
		if n.Kind != syntax.KindComment {
			break
		}
	}

	prevLine := -1
	if first > 0 {
		prevLine = nodes[first-1].EndLine
	}

	var (
		stmts      []*ImportStatement
		pending    []syntax.Node
		trailStart = -1
	)

scan:
	for i := first; i < len(nodes); i++ {
		n := nodes[i]
		switch n.Kind {
		case syntax.KindComment:
			if n.StartLine == prevLine && len(pending) == 0 {
				if len(stmts) == 0 {
					// trails a directive; part of the prologue
					continue
				}
				last := stmts[len(stmts)-1]
				if trailStart < 0 {
					trailStart = last.End
				}
				last.Trailing = string(src[trailStart:n.End])
				last.FullEnd = n.End
				continue
			}
			pending = append(pending, n)

		case syntax.KindImport:
			if n.Unsupported {
				return nil, errors.ErrParseUnsupported
			}
			s := newStatement(src, n, len(stmts))
			if attached := attach(src, pending, n, len(stmts) == 0, prevLine, detach); len(attached) > 0 {
				s.FullStart = attached[0].Start
				s.Leading = string(src[s.FullStart:s.Start])
			}
			stmts = append(stmts, s)
			pending = nil
			trailStart = -1
			prevLine = n.EndLine

		case syntax.KindError:
			return nil, errors.ErrParseUnsupported

		default:
			break scan
		}
	}

	if len(stmts) == 0 {
		return nil, errors.ErrEmptyRegion
	}

	lines := newLineIndex(src)
	for _, s := range stmts {
		s.StartLine = lines.line(s.FullStart)
		s.EndLine = lines.line(s.FullEnd - 1)
	}

	return &Region{
		Start:      stmts[0].FullStart,
		End:        stmts[len(stmts)-1].FullEnd,
		StartLine:  stmts[0].StartLine,
		EndLine:    stmts[len(stmts)-1].EndLine,
		Statements: stmts,
	}, nil
}

// attach picks the pending comments that belong to the import n.
func attach(src []byte, pending []syntax.Node, n syntax.Node, first bool, prevLine, detach int) []syntax.Node {
	if !first {
		return pending
	}
	cut := len(pending)
	boundary := n.Start
	for j := len(pending) - 1; j >= 0; j-- {
		c := pending[j]
		if c.StartLine == prevLine || blankLines(src, c.End, boundary) >= detach {
			break
		}
		boundary = c.Start
		cut = j
	}
	return pending[cut:]
}

func newStatement(src []byte, n syntax.Node, index int) *ImportStatement {
	return &ImportStatement{
		Specifier:  n.Specifier,
		Quote:      n.Quote,
		TypeOnly:   n.TypeOnly,
		SideEffect: n.SideEffect,
		Empty:      n.EmptyClause,
		Bindings:   append([]syntax.Binding(nil), n.Bindings...),
		Attributes: n.Attributes,
		Semicolon:  n.Semicolon,
		Start:      n.Start,
		End:        n.End,
		FullStart:  n.Start,
		FullEnd:    n.End,
		Raw:        string(src[n.Start:n.End]),
		Verbatim:   n.InnerComments,
		Index:      index,
	}
}

// suppressed reports whether an exclusion range overlaps the region.
func suppressed(region *Region, exclusions []config.LineRange) bool {
	lines := config.LineRange{Start: region.StartLine, End: region.EndLine}
	for _, ex := range exclusions {
		if lines.Overlaps(ex) {
			return true
		}
	}
	return false
}
