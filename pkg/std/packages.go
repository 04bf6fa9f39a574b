package std

import "strings"

// NodeScheme is the URL scheme Node.js reserves for its built-in modules.
const NodeScheme = "node:"

// StandardPackages lists the Node.js built-in modules addressable without the node: scheme.
var StandardPackages = map[string]bool{
	"assert":              true,
	"assert/strict":       true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"dns/promises":        true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"fs/promises":         true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"inspector/promises":  true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"path/posix":          true,
	"path/win32":          true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"readline/promises":   true,
	"repl":                true,
	"stream":              true,
	"stream/consumers":    true,
	"stream/promises":     true,
	"stream/web":          true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"timers/promises":     true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"util/types":          true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// schemeOnly lists built-ins that only resolve with the node: scheme.
var schemeOnly = map[string]bool{
	"sea":            true,
	"sqlite":         true,
	"test":           true,
	"test/reporters": true,
}

// IsStandardPackage checks if specifier names a Node.js built-in module.
func IsStandardPackage(specifier string) bool {
	if name, ok := strings.CutPrefix(specifier, NodeScheme); ok {
		return StandardPackages[name] || schemeOnly[name]
	}
	return StandardPackages[specifier]
}

// IsSchemeQualified reports whether specifier uses the node: scheme.
func IsSchemeQualified(specifier string) bool {
	return strings.HasPrefix(specifier, NodeScheme)
}
