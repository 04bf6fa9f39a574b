package lint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []config.LineRange
	}{
		{
			name: "no directives",
			src:  "import a from 'a';\nimport b from 'b';\n",
			want: nil,
		},
		{
			name: "next line",
			src:  "import a from 'a';\n// eslint-disable-next-line import/order\nimport b from 'b';\n",
			want: []config.LineRange{{Start: 3, End: 3}},
		},
		{
			name: "same line block comment",
			src:  "import a from 'a'; /* eslint-disable-line */\n",
			want: []config.LineRange{{Start: 1, End: 1}},
		},
		{
			name: "disable enable block",
			src:  "/* eslint-disable sort-imports */\nimport b from 'b';\nimport a from 'a';\n/* eslint-enable sort-imports */\nconst x = 1;\n",
			want: []config.LineRange{{Start: 1, End: 4}},
		},
		{
			name: "unterminated block runs to the end",
			src:  "const x = 1;\n/* eslint-disable */\nfoo();\nbar();\n",
			want: []config.LineRange{{Start: 2, End: 4}},
		},
		{
			name: "unrelated rule",
			src:  "// eslint-disable-next-line no-console\nimport b from 'b';\n",
			want: nil,
		},
		{
			name: "rule list with description",
			src:  "// eslint-disable-next-line no-console, simple-import-sort/imports -- polyfill first\nimport 'polyfill';\n",
			want: []config.LineRange{{Start: 2, End: 2}},
		},
		{
			name: "enable without disable",
			src:  "/* eslint-enable */\nimport a from 'a';\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Scan([]byte(tt.src)))
		})
	}
}

func TestLayer(t *testing.T) {
	req := require.New(t)

	l := Layer([]byte("import a from 'a';\n"))
	req.NotNil(l.Exclusions, "an empty scan still overrides inherited exclusions")
	req.Empty(l.Exclusions)

	l = Layer([]byte("// eslint-disable-next-line\nimport a from 'a';\n"))
	req.Equal([]config.LineRange{{Start: 2, End: 2}}, l.Exclusions)
}
