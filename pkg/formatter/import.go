package formatter

import (
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
)

// ImportStatement is one static import in the import region.
type ImportStatement struct {
	Specifier  string // module specifier as written, without quotes
	Quote      byte   // quote character used in the source
	TypeOnly   bool   // `import type ...`
	SideEffect bool   // `import 'x'`
	Empty      bool   // `import {} from 'x'`
	Bindings   []syntax.Binding
	Attributes string // raw import attributes clause, e.g. `with { type: 'json' }`
	Semicolon  bool

	Leading  string // attached comments above the statement, up to the statement start
	Trailing string // same-line comment, including the whitespace before it

	Start     int // byte offset of the statement
	End       int
	FullStart int // byte offset including leading comments
	FullEnd   int // byte offset including the trailing comment
	StartLine int // 1-based line of FullStart
	EndLine   int // 1-based line of FullEnd

	Raw      string // source text of the statement, without comments
	Verbatim bool   // statement contains comments and is emitted as written

	Index int // source order
	Group int // index into Config.Groups, set by the classifier

	modified bool
}

// Region is the contiguous span of import statements at the top of a file.
type Region struct {
	Start      int
	End        int
	StartLine  int // 1-based
	EndLine    int
	Statements []*ImportStatement
}

// Group is an ordered bucket of statements emitted together.
type Group struct {
	Name       string
	Statements []*ImportStatement
}
