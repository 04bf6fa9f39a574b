package formatter

import (
	"bytes"
	"context"
	"regexp"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
)

// generatedHeader matches the conventional marker of machine-written sources.
var generatedHeader = regexp.MustCompile(`(?m)^\s*(//|/\*|\*)\s*(Code generated .* DO NOT EDIT|@generated\b)`)

// generatedScanLimit bounds how much of a file is searched for a generated marker.
const generatedScanLimit = 1024

// Engine formats the import region of source files. It holds no per-file state and is safe for
// concurrent use.
type Engine struct {
	provider syntax.Provider
}

// NewEngine creates an Engine backed by provider.
func NewEngine(provider syntax.Provider) *Engine {
	return &Engine{provider: provider}
}

var defaultEngine = NewEngine(syntax.NewTreeSitter())

// FormatSource reorders the imports of one file. identity selects the dialect from its extension.
// It returns the new text and true when the file changes, or nil and false when it is left as it
// is: nothing to do, already formatted or skipped. Only binding conflicts and provider failures
// are reported as errors.
func FormatSource(identity string, src []byte, cfg config.Config) ([]byte, bool, error) {
	return defaultEngine.FormatSource(identity, src, cfg)
}

// FormatSource is the Engine form of the package level FormatSource.
func (e *Engine) FormatSource(identity string, src []byte, cfg config.Config) ([]byte, bool, error) {
	out, err := e.Format(identity, src, cfg)
	if err != nil {
		if errors.IsSkip(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if bytes.Equal(out, src) {
		return nil, false, nil
	}
	return out, true, nil
}

// Format is FormatSource with skip reasons reported as *errors.SkipError. It always returns the
// full output text on success, even when nothing changed.
func (e *Engine) Format(identity string, src []byte, cfg config.Config) ([]byte, error) {
	dialect, ok := syntax.DialectFor(identity)
	if !ok {
		return nil, errors.ErrUnknownDialect
	}

	tree, err := e.provider.Parse(context.Background(), src, dialect)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMsgFailedToParseFile)
	}

	region, err := Extract(src, tree, cfg.DetachBlankLines)
	if err != nil {
		return nil, err
	}
	if suppressed(region, cfg.Exclusions) {
		return nil, errors.ErrSuppressed
	}

	if cfg.EOL == config.EOLAuto {
		cfg.EOL = DetectEOL(src)
	}

	groups, err := Arrange(region.Statements, cfg)
	if err != nil {
		return nil, err
	}
	return Emit(src, region, groups, cfg), nil
}

// DetectEOL returns the line ending of the first line break in src, LF when there is none.
func DetectEOL(src []byte) config.EOL {
	if i := bytes.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return config.EOLCRLF
	}
	return config.EOLLF
}

// IsGeneratedFile reports whether the head of src carries a generated-code marker.
func IsGeneratedFile(src []byte) bool {
	if len(src) > generatedScanLimit {
		src = src[:generatedScanLimit]
	}
	return generatedHeader.Match(src)
}
