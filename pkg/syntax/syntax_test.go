package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		path   string
		want   Dialect
		wantOK bool
	}{
		{"a.js", JavaScript, true},
		{"a.mjs", JavaScript, true},
		{"a.cjs", JavaScript, true},
		{"src/App.jsx", JavaScript, true},
		{"a.ts", TypeScript, true},
		{"a.mts", TypeScript, true},
		{"a.d.cts", TypeScript, true},
		{"A.TSX", TSX, true},
		{"a.vue", 0, false},
		{"Makefile", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := DialectFor(tt.path)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBinding_Local(t *testing.T) {
	req := require.New(t)
	req.Equal("a", Binding{Kind: Named, Name: "a"}.Local())
	req.Equal("b", Binding{Kind: Named, Name: "a", Alias: "b"}.Local())
}

func parse(t *testing.T, src string, dialect Dialect) *Tree {
	t.Helper()
	tree, err := NewTreeSitter().Parse(context.Background(), []byte(src), dialect)
	require.NoError(t, err)
	require.Equal(t, dialect, tree.Dialect)
	return tree
}

func kinds(tree *Tree) []Kind {
	var out []Kind
	for _, n := range tree.Nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestTreeSitter_Parse_kinds(t *testing.T) {
	req := require.New(t)
	src := "#!/usr/bin/env node\n'use strict';\n// note\nimport a from 'a';\nconst x = 1;\n"
	tree := parse(t, src, JavaScript)

	req.Equal([]Kind{KindHashBang, KindDirective, KindComment, KindImport, KindOther}, kinds(tree))

	imp := tree.Nodes[3]
	req.Equal("import a from 'a';", src[imp.Start:imp.End])
	req.Equal(3, imp.StartLine)
	req.Equal(3, imp.EndLine)
}

func TestTreeSitter_Parse_imports(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		src     string
		want    Node
	}{
		{
			name:    "default",
			dialect: JavaScript,
			src:     `import React from "react";`,
			want: Node{
				Specifier: "react",
				Quote:     '"',
				Bindings:  []Binding{{Kind: Default, Name: "React"}},
				Semicolon: true,
			},
		},
		{
			name:    "namespace",
			dialect: JavaScript,
			src:     `import * as path from 'path';`,
			want: Node{
				Specifier: "path",
				Quote:     '\'',
				Bindings:  []Binding{{Kind: Namespace, Name: "path"}},
				Semicolon: true,
			},
		},
		{
			name:    "default and named",
			dialect: JavaScript,
			src:     `import a, { b, c as d } from './x';`,
			want: Node{
				Specifier: "./x",
				Quote:     '\'',
				Bindings: []Binding{
					{Kind: Default, Name: "a"},
					{Kind: Named, Name: "b"},
					{Kind: Named, Name: "c", Alias: "d"},
				},
				Semicolon: true,
			},
		},
		{
			name:    "side effect",
			dialect: JavaScript,
			src:     `import './styles.css';`,
			want: Node{
				Specifier:  "./styles.css",
				Quote:      '\'',
				SideEffect: true,
				Semicolon:  true,
			},
		},
		{
			name:    "empty clause",
			dialect: TypeScript,
			src:     `import type {} from "x";`,
			want: Node{
				Specifier:   "x",
				Quote:       '"',
				TypeOnly:    true,
				EmptyClause: true,
				Semicolon:   true,
			},
		},
		{
			name:    "type only",
			dialect: TypeScript,
			src:     `import type { Props } from './props';`,
			want: Node{
				Specifier: "./props",
				Quote:     '\'',
				TypeOnly:  true,
				Bindings:  []Binding{{Kind: Named, Name: "Props", TypeOnly: true}},
				Semicolon: true,
			},
		},
		{
			name:    "inner comment",
			dialect: TypeScript,
			src:     "import {\n  a, // first\n  b,\n} from 'x';",
			want: Node{
				Specifier:     "x",
				Quote:         '\'',
				Bindings:      []Binding{{Kind: Named, Name: "a"}, {Kind: Named, Name: "b"}},
				Semicolon:     true,
				InnerComments: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			tree := parse(t, tt.src, tt.dialect)
			req.Len(tree.Nodes, 1)

			got := tree.Nodes[0]
			req.Equal(KindImport, got.Kind)
			req.Equal(0, got.Start)
			req.Equal(len(tt.src), got.End)
			req.Equal(tt.want.Specifier, got.Specifier)
			req.Equal(tt.want.Quote, got.Quote)
			req.Equal(tt.want.TypeOnly, got.TypeOnly)
			req.Equal(tt.want.Bindings, got.Bindings)
			req.Equal(tt.want.SideEffect, got.SideEffect)
			req.Equal(tt.want.EmptyClause, got.EmptyClause)
			req.Equal(tt.want.Semicolon, got.Semicolon)
			req.Equal(tt.want.InnerComments, got.InnerComments)
			req.False(got.Unsupported)
		})
	}
}

func TestTreeSitter_Parse_unsupported(t *testing.T) {
	req := require.New(t)
	tree := parse(t, "import fs = require('fs');\n", TypeScript)
	req.Len(tree.Nodes, 1)
	req.Equal(KindImport, tree.Nodes[0].Kind)
	req.True(tree.Nodes[0].Unsupported)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		lit   string
		want  string
		quote byte
	}{
		{`'a'`, "a", '\''},
		{`"b/c"`, "b/c", '"'},
		{`"it's"`, "it's", '"'},
		{"`tpl`", "", 0},
		{`'`, "", 0},
		{`'mismatch"`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, q := unquote(tt.lit)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.quote, q)
		})
	}
}
