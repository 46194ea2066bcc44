package bundler

import "strings"

// nodeBuiltinModules lists the Node.js core modules a browser bundler may be
// asked to polyfill. Only names in this set may be disabled as fallbacks.
//
// Top-level names only; subpath exports such as "fs/promises" resolve
// through their base name.
var nodeBuiltinModules = map[string]bool{
	"assert":              true,
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
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// isNodeBuiltin reports whether a module name is a Node.js builtin, handling
// the "node:" prefix and subpath forms.
func isNodeBuiltin(name string) bool {
	name = strings.TrimPrefix(name, "node:")
	if base, _, ok := strings.Cut(name, "/"); ok {
		return nodeBuiltinModules[base]
	}
	return nodeBuiltinModules[name]
}
