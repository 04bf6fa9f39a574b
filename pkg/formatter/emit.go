package formatter

import (
	"strings"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
)

// Emit replaces the region of src with the arranged groups. Bytes outside the region are copied
// unchanged. Groups are separated by cfg.BlankLines empty lines; the region itself starts and
// ends without blank lines. Line breaks inside statements and their comments are converted to
// cfg.EOL.
func Emit(src []byte, region *Region, groups []Group, cfg config.Config) []byte {
	eol := cfg.EOL.Sequence()

	var b strings.Builder
	for gi, g := range groups {
		if gi > 0 {
			b.WriteString(strings.Repeat(eol, cfg.BlankLines+1))
		}
		for si, s := range g.Statements {
			if si > 0 {
				b.WriteString(eol)
			}
			b.WriteString(withEOL(s.Leading+Render(s, cfg)+s.Trailing, eol))
		}
	}

	out := make([]byte, 0, len(src)+b.Len()-(region.End-region.Start))
	out = append(out, src[:region.Start]...)
	out = append(out, b.String()...)
	out = append(out, src[region.End:]...)
	return out
}

// Render returns the text of one import statement. Statements that are unchanged and already
// satisfy the quote policy keep their source text.
func Render(s *ImportStatement, cfg config.Config) string {
	quote := quoteFor(s, cfg.Quote)
	if s.Verbatim || (!s.modified && quote == s.Quote) {
		return terminate(s.Raw, s.Semicolon, cfg.Semicolons)
	}

	var b strings.Builder
	b.WriteString("import ")
	if s.TypeOnly {
		b.WriteString("type ")
	}
	clause := renderClause(s, cfg.BracketSpacing)
	if clause == "" && s.Empty {
		clause = "{}"
	}
	if clause != "" {
		b.WriteString(clause)
		b.WriteString(" from ")
	}
	b.WriteByte(quote)
	b.WriteString(s.Specifier)
	b.WriteByte(quote)
	if s.Attributes != "" {
		b.WriteByte(' ')
		b.WriteString(s.Attributes)
	}

	text := b.String()
	if s.Semicolon {
		text += ";"
	}
	return terminate(text, s.Semicolon, cfg.Semicolons)
}

func renderClause(s *ImportStatement, spacing bool) string {
	var parts []string
	var named []string
	for _, b := range s.Bindings {
		switch b.Kind {
		case syntax.Default:
			parts = append(parts, b.Name)
		case syntax.Namespace:
			parts = append(parts, "* as "+b.Name)
		case syntax.Named:
			named = append(named, renderNamed(b, s.TypeOnly))
		}
	}
	if len(named) > 0 {
		if spacing {
			parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
		} else {
			parts = append(parts, "{"+strings.Join(named, ", ")+"}")
		}
	}
	return strings.Join(parts, ", ")
}

func renderNamed(b syntax.Binding, statementTypeOnly bool) string {
	text := b.Name
	if b.Alias != "" {
		text += " as " + b.Alias
	}
	if b.TypeOnly && !statementTypeOnly {
		text = "type " + text
	}
	return text
}

// quoteFor picks the quote character for a specifier. A specifier containing the preferred
// quote or an escape keeps its original quote.
func quoteFor(s *ImportStatement, policy config.Quote) byte {
	var want byte
	switch policy {
	case config.QuoteSingle:
		want = '\''
	case config.QuoteDouble:
		want = '"'
	default:
		return s.Quote
	}
	if strings.IndexByte(s.Specifier, want) >= 0 || strings.IndexByte(s.Specifier, '\\') >= 0 {
		return s.Quote
	}
	return want
}

// terminate applies the semicolon policy to statement text ending with or without a semicolon.
func terminate(text string, has bool, policy config.Semicolons) string {
	switch {
	case policy == config.SemicolonsAlways && !has:
		return text + ";"
	case policy == config.SemicolonsNever && has:
		return strings.TrimSuffix(text, ";")
	default:
		return text
	}
}

// withEOL converts the line breaks of text to eol.
func withEOL(text, eol string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if eol != "\n" {
		text = strings.ReplaceAll(text, "\n", eol)
	}
	return text
}
