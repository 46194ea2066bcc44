// Package bundler constructs the resolver-override configuration the host
// build tool installs before module graph construction, and converts it to
// the host's configuration surface.
//
// Construction happens once per build invocation and only for the browser
// bundle. Server bundles keep default resolution: the duplicate-copy and
// missing-subsystem problems only manifest in the browser runtime, and
// overriding there would mask legitimate server-side resolution differences.
package bundler

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/flightglobe/threeshim/internal/nodemods"
	"github.com/flightglobe/threeshim/internal/stubs"
	"github.com/flightglobe/threeshim/pkg/resolve"
)

// Defaults for Options fields left zero.
const (
	// DefaultStubDirName is created under the project root to hold the
	// materialized stub modules.
	DefaultStubDirName = ".threeshim"
)

// DefaultNestedPackages are the globe-rendering packages known to bundle a
// private copy of the graphics library.
var DefaultNestedPackages = []string{"globe.gl", "three-globe"}

// DefaultDisabledFallbacks are the Node builtins the graphics/globe stack
// references only on code paths unreachable in-browser.
var DefaultDisabledFallbacks = []string{"fs", "net", "tls"}

// Options tunes configuration construction. The zero value gives the
// standard client-build behavior.
type Options struct {
	// NestedPackages whose private library copies get exact alias entries.
	// Downstream packages discovered to physically bundle a nested copy are
	// added on top of this list.
	NestedPackages []string

	// StubDir receives the materialized stub modules.
	StubDir string

	// DisabledFallbacks are Node builtins resolved to no implementation in
	// the browser bundle. Names outside the builtin table are a
	// configuration error.
	DisabledFallbacks []string
}

func (o Options) withDefaults(projectRoot string) Options {
	if o.NestedPackages == nil {
		o.NestedPackages = DefaultNestedPackages
	}
	if o.StubDir == "" {
		o.StubDir = filepath.Join(projectRoot, DefaultStubDirName)
	}
	if o.DisabledFallbacks == nil {
		o.DisabledFallbacks = DefaultDisabledFallbacks
	}
	return o
}

// BuildConfig constructs the complete resolver-override configuration for
// one bundle. For server bundles (client=false) it returns a zero Config and
// touches nothing.
//
// For client bundles it locates the canonical library copy (failing fast
// when missing), materializes the stub modules under the stub directory
// (an idempotent write), and assembles the alias table, the path-pattern
// replacement rules, and the disabled fallbacks. Equal inputs produce
// deeply equal configurations.
func BuildConfig(projectRoot string, client bool, opts Options) (resolve.Config, error) {
	if !client {
		return resolve.Config{}, nil
	}

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return resolve.Config{}, fmt.Errorf("resolving project root: %w", err)
	}
	opts = opts.withDefaults(root)

	lib, err := nodemods.LocateCanonical(root)
	if err != nil {
		return resolve.Config{}, err
	}

	stubPaths, err := stubs.Write(opts.StubDir)
	if err != nil {
		return resolve.Config{}, err
	}

	nested, err := NestedHosts(root, opts.NestedPackages)
	if err != nil {
		return resolve.Config{}, err
	}

	libTarget := resolve.Target{Kind: resolve.TargetLibrary, Path: lib.Path}

	var aliases []resolve.Rule
	aliases = append(aliases, resolve.Rule{Specifier: nodemods.LibraryName, Target: libTarget})
	for _, s := range stubs.Subsystems() {
		aliases = append(aliases, resolve.Rule{
			Specifier: s.Specifier,
			Target:    resolve.Target{Kind: resolve.TargetStub, Path: stubPaths[s.Specifier]},
		})
	}
	for _, host := range nested {
		aliases = append(aliases, resolve.Rule{
			Specifier: host + "/node_modules/" + nodemods.LibraryName,
			Target:    libTarget,
		})
	}
	aliases = append(aliases, resolve.Rule{
		Specifier: nodemods.LibraryName + "/",
		Prefix:    true,
		Target:    resolve.Target{Kind: resolve.TargetLibrary, Path: lib.Path, SubpathPreserving: true},
	})

	var replacements []resolve.ReplacementRule
	for _, s := range stubs.Subsystems() {
		replacements = append(replacements, resolve.ReplacementRule{
			Pattern: pathPattern(s.Specifier),
			Target:  resolve.Target{Kind: resolve.TargetStub, Path: stubPaths[s.Specifier]},
		})
	}

	fallbacks := make(map[string]bool, len(opts.DisabledFallbacks))
	for _, name := range opts.DisabledFallbacks {
		if !isNodeBuiltin(name) {
			return resolve.Config{}, fmt.Errorf("%w: %q", resolve.ErrUnknownFallback, name)
		}
		fallbacks[name] = false
	}

	cfg := resolve.Config{
		Aliases:      aliases,
		Replacements: replacements,
		Fallbacks:    fallbacks,
	}
	if err := cfg.Validate(); err != nil {
		return resolve.Config{}, fmt.Errorf("assembled configuration: %w", err)
	}
	return cfg, nil
}

// NestedHosts merges the configured nested packages with the hosts that
// physically bundle a private library copy, deduplicated and sorted so the
// resulting alias table is stable. The capability check scans the same set,
// so a discovered-but-unconfigured host cannot escape it.
func NestedHosts(root string, configured []string) ([]string, error) {
	seen := make(map[string]bool, len(configured))
	var hosts []string
	for _, h := range configured {
		if !seen[h] {
			seen[h] = true
			hosts = append(hosts, h)
		}
	}

	copies, err := nodemods.NestedCopies(root, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range copies {
		if !seen[c.Host] {
			seen[c.Host] = true
			hosts = append(hosts, c.Host)
		}
	}

	sort.Strings(hosts)
	return hosts, nil
}

// pathPattern builds the resolved-path interception pattern for a subsystem
// specifier: its segments in order, separated by either path separator, so
// "three/webgpu" catches node_modules/three/webgpu.js on any platform.
func pathPattern(specifier string) *regexp.Regexp {
	segs := strings.Split(specifier, "/")
	quoted := make([]string, len(segs))
	for i, s := range segs {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(^|[\\/])` + strings.Join(quoted, `[\\/]`) + `(\.|[\\/]|$)`)
}
