// Package syntax reduces a JavaScript or TypeScript syntax tree to the top-level statement model the
// import formatter needs: statement kinds, import clause shapes, specifiers, byte spans and comments.
package syntax

import (
	"context"
	"path/filepath"
	"strings"
)

// Dialect is the grammar used to parse a file.
type Dialect int

const (
	JavaScript Dialect = iota // JSX-aware
	TypeScript
	TSX
)

func (d Dialect) String() string {
	switch d {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "javascript"
	}
}

// DialectFor picks the dialect implied by a file name's extension.
func DialectFor(path string) (Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	default:
		return 0, false
	}
}

// Kind classifies a top-level statement.
type Kind int

const (
	KindOther Kind = iota
	KindImport
	KindComment
	KindHashBang
	KindDirective
	KindError
)

// BindingKind classifies a name bound by an import clause.
type BindingKind int

const (
	Default BindingKind = iota
	Namespace
	Named
)

// Binding is one name bound by an import clause.
type Binding struct {
	Kind BindingKind
	// Name is the local name for default and namespace bindings, the exported name for named ones.
	Name string
	// Alias is the local name of a named binding imported with `as`.
	Alias    string
	TypeOnly bool
}

// Local returns the identifier the binding introduces into the module scope.
func (b Binding) Local() string {
	if b.Alias != "" {
		return b.Alias
	}
	return b.Name
}

// Node is a top-level statement or comment.
type Node struct {
	Kind      Kind
	Start     int
	End       int
	StartLine int // 0-based
	EndLine   int // 0-based

	// Import statement details; zero for other kinds.
	Specifier     string
	Quote         byte
	TypeOnly      bool
	Bindings      []Binding
	SideEffect    bool
	EmptyClause   bool // `import {} from 'x'`: a clause that binds nothing
	Attributes    string
	Semicolon     bool
	InnerComments bool
	Unsupported   bool
}

// Tree is the reduced syntax tree of one file.
type Tree struct {
	Dialect Dialect
	Nodes   []Node
}

// Provider parses source text into a reduced Tree.
type Provider interface {
	Parse(ctx context.Context, src []byte, dialect Dialect) (*Tree, error)
}
