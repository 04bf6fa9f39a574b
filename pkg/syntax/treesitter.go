package syntax

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
)

// TreeSitter is a Provider backed by tree-sitter grammars. It is safe for concurrent use.
type TreeSitter struct {
	parsers sync.Pool
}

// NewTreeSitter creates a tree-sitter Provider.
func NewTreeSitter() *TreeSitter {
	return &TreeSitter{
		parsers: sync.Pool{
			New: func() interface{} {
				return sitter.NewParser()
			},
		},
	}
}

func language(d Dialect) *sitter.Language {
	switch d {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses src and reduces the program's top-level statements.
func (p *TreeSitter) Parse(ctx context.Context, src []byte, dialect Dialect) (*Tree, error) {
	parser := p.parsers.Get().(*sitter.Parser)
	defer p.parsers.Put(parser)

	parser.SetLanguage(language(dialect))
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", dialect)
	}

	root := tree.RootNode()
	out := &Tree{Dialect: dialect}
	count := int(root.NamedChildCount())
	for i := 0; i < count; i++ {
		out.Nodes = append(out.Nodes, reduce(root.NamedChild(i), src))
	}
	return out, nil
}

func reduce(n *sitter.Node, src []byte) Node {
	node := Node{
		Start:     int(n.StartByte()),
		End:       int(n.EndByte()),
		StartLine: int(n.StartPoint().Row),
		EndLine:   int(n.EndPoint().Row),
	}

	switch n.Type() {
	case "comment", "html_comment":
		node.Kind = KindComment
	case "hash_bang_line":
		node.Kind = KindHashBang
	case "expression_statement":
		if isDirective(n) {
			node.Kind = KindDirective
		}
	case "import_statement":
		node.Kind = KindImport
		reduceImport(n, src, &node)
	case "ERROR":
		node.Kind = KindError
	}
	return node
}

// isDirective matches prologue strings such as "use strict".
func isDirective(n *sitter.Node) bool {
	return n.NamedChildCount() == 1 && n.NamedChild(0).Type() == "string"
}

func reduceImport(n *sitter.Node, src []byte, node *Node) {
	if n.HasError() {
		node.Unsupported = true
	}

	hasClause := false
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		switch c.Type() {
		case "type":
			if !c.IsNamed() {
				node.TypeOnly = true
			}
		case "typeof", "import_require_clause":
			node.Unsupported = true
		case "import_clause":
			hasClause = true
			reduceClause(c, src, node)
		case "string":
			node.Specifier, node.Quote = unquote(c.Content(src))
		case "import_attribute":
			node.Attributes = c.Content(src)
		case ";":
			// automatic semicolons are zero-width
			node.Semicolon = c.EndByte() > c.StartByte()
		case "comment":
			node.InnerComments = true
		}
	}

	if node.Quote == 0 {
		node.Unsupported = true
	}
	if len(node.Bindings) == 0 {
		node.EmptyClause = hasClause
		node.SideEffect = !hasClause
	}
	if !node.InnerComments && containsComment(n) {
		node.InnerComments = true
	}
}

func reduceClause(clause *sitter.Node, src []byte, node *Node) {
	count := int(clause.ChildCount())
	for i := 0; i < count; i++ {
		c := clause.Child(i)
		switch c.Type() {
		case "identifier":
			node.Bindings = append(node.Bindings, Binding{Kind: Default, Name: c.Content(src), TypeOnly: node.TypeOnly})
		case "namespace_import":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				if id := c.NamedChild(j); id.Type() == "identifier" {
					node.Bindings = append(node.Bindings, Binding{Kind: Namespace, Name: id.Content(src), TypeOnly: node.TypeOnly})
				}
			}
		case "named_imports":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				spec := c.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				node.Bindings = append(node.Bindings, reduceSpecifier(spec, src, node.TypeOnly))
			}
		case "comment":
			node.InnerComments = true
		}
	}
}

func reduceSpecifier(spec *sitter.Node, src []byte, typeOnly bool) Binding {
	b := Binding{Kind: Named, TypeOnly: typeOnly}
	if name := spec.ChildByFieldName("name"); name != nil {
		b.Name = name.Content(src)
	}
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		b.Alias = alias.Content(src)
	}
	for k := 0; k < int(spec.ChildCount()); k++ {
		if c := spec.Child(k); !c.IsNamed() && c.Type() == "type" {
			b.TypeOnly = true
		}
	}
	return b
}

func containsComment(n *sitter.Node) bool {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" || containsComment(c) {
			return true
		}
	}
	return false
}

// unquote strips the quotes of a string literal, returning its raw body and quote character.
func unquote(lit string) (string, byte) {
	if len(lit) < 2 {
		return "", 0
	}
	q := lit[0]
	if (q != '\'' && q != '"') || lit[len(lit)-1] != q {
		return "", 0
	}
	return lit[1 : len(lit)-1], q
}
