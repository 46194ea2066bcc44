package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

// fixtureProject lays out a project install tree with a canonical library
// copy and nested copies inside the globe packages.
func fixtureProject(t *testing.T) (root, canonical string) {
	t.Helper()
	root = t.TempDir()

	write := func(dir, name, version string) string {
		pkgDir := filepath.Join(root, filepath.FromSlash(dir))
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		content := `{"name":"` + name + `","version":"` + version + `"}`
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(content), 0o644))
		return pkgDir
	}

	canonical = write("node_modules/three", "three", "0.170.0")
	write("node_modules/globe.gl", "globe.gl", "2.33.0")
	write("node_modules/globe.gl/node_modules/three", "three", "0.160.0")
	write("node_modules/three-globe", "three-globe", "2.31.0")
	write("node_modules/three-globe/node_modules/three", "three", "0.161.0")
	return root, canonical
}

func TestBuildConfig_ClientBundle(t *testing.T) {
	root, canonical := fixtureProject(t)

	cfg, err := BuildConfig(root, true, Options{})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	t.Run("library specifiers converge on one canonical path", func(t *testing.T) {
		for _, spec := range []string{
			"three",
			"globe.gl/node_modules/three",
			"three-globe/node_modules/three",
		} {
			got, ok := cfg.Resolve(spec)
			require.True(t, ok, "specifier %q", spec)
			assert.Equal(t, resolve.TargetLibrary, got.Kind)
			assert.Equal(t, canonical, got.Path, "specifier %q", spec)
		}
	})

	t.Run("subsystems resolve to stubs, never the real entries", func(t *testing.T) {
		for _, spec := range []string{"three/webgpu", "three/tsl"} {
			got, ok := cfg.Resolve(spec)
			require.True(t, ok, "specifier %q", spec)
			assert.Equal(t, resolve.TargetStub, got.Kind)
			assert.NotEqual(t, canonical, got.Path)

			// The stub file is materialized, not just referenced.
			_, err := os.Stat(got.Path)
			assert.NoError(t, err, "stub for %q must exist on disk", spec)
		}
	})

	t.Run("subpaths stay inside the canonical copy", func(t *testing.T) {
		got, ok := cfg.Resolve("three/examples/jsm/lines/Line2.js")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(canonical, "examples/jsm/lines/Line2.js"), got.Path)
	})

	t.Run("replacement rules intercept resolved subsystem paths", func(t *testing.T) {
		got, ok := cfg.ReplaceResolved(filepath.Join(canonical, "webgpu.js"))
		require.True(t, ok)
		assert.Equal(t, resolve.TargetStub, got.Kind)

		_, ok = cfg.ReplaceResolved(filepath.Join(canonical, "build", "three.module.js"))
		assert.False(t, ok)
	})

	t.Run("browser fallbacks disabled for fs net tls", func(t *testing.T) {
		require.Len(t, cfg.Fallbacks, 3)
		for _, name := range []string{"fs", "net", "tls"} {
			enabled, present := cfg.Fallbacks[name]
			assert.True(t, present, "fallback %q", name)
			assert.False(t, enabled, "fallback %q must resolve to no implementation", name)
		}
	})
}

func TestBuildConfig_ServerBundleUntouched(t *testing.T) {
	root, _ := fixtureProject(t)

	cfg, err := BuildConfig(root, false, Options{})
	require.NoError(t, err)
	assert.True(t, cfg.IsZero())

	// Server construction must not even require the library to be installed.
	cfg, err = BuildConfig(t.TempDir(), false, Options{})
	require.NoError(t, err)
	assert.True(t, cfg.IsZero())
}

func TestBuildConfig_Idempotent(t *testing.T) {
	root, _ := fixtureProject(t)

	first, err := BuildConfig(root, true, Options{})
	require.NoError(t, err)
	second, err := BuildConfig(root, true, Options{})
	require.NoError(t, err)

	assert.Equal(t, len(first.Aliases), len(second.Aliases))
	assert.Equal(t, first.Aliases, second.Aliases)
	assert.Equal(t, first.Fallbacks, second.Fallbacks)
	require.Equal(t, len(first.Replacements), len(second.Replacements))
	for i := range first.Replacements {
		assert.Equal(t, first.Replacements[i].Pattern.String(), second.Replacements[i].Pattern.String())
		assert.Equal(t, first.Replacements[i].Target, second.Replacements[i].Target)
	}
}

func TestBuildConfig_MissingLibraryFailsFast(t *testing.T) {
	root := t.TempDir()

	_, err := BuildConfig(root, true, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrLibraryNotInstalled)

	// Failing at configuration time means no stub directory appears either.
	_, statErr := os.Stat(filepath.Join(root, DefaultStubDirName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildConfig_DiscoveredNestedHostMerged(t *testing.T) {
	root, canonical := fixtureProject(t)

	// A package outside the configured list that bundles its own copy.
	extraDir := filepath.Join(root, "node_modules", "orbit-viz", "node_modules", "three")
	require.NoError(t, os.MkdirAll(extraDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(extraDir, "package.json"),
		[]byte(`{"name":"three","version":"0.150.0"}`), 0o644))

	cfg, err := BuildConfig(root, true, Options{})
	require.NoError(t, err)

	got, ok := cfg.Resolve("orbit-viz/node_modules/three")
	require.True(t, ok, "discovered nested copy must be aliased")
	assert.Equal(t, canonical, got.Path)
}

func TestNestedHosts(t *testing.T) {
	root, _ := fixtureProject(t)

	// Bundles a private copy but is absent from the configured list.
	extraDir := filepath.Join(root, "node_modules", "orbit-viz", "node_modules", "three")
	require.NoError(t, os.MkdirAll(extraDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(extraDir, "package.json"),
		[]byte(`{"name":"three","version":"0.150.0"}`), 0o644))

	hosts, err := NestedHosts(root, []string{"globe.gl", "three-globe", "globe.gl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"globe.gl", "orbit-viz", "three-globe"}, hosts,
		"deduplicated, discovered host merged, sorted")
}

func TestBuildConfig_UnknownFallbackRejected(t *testing.T) {
	root, _ := fixtureProject(t)

	_, err := BuildConfig(root, true, Options{DisabledFallbacks: []string{"fs", "lodash"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrUnknownFallback)
}

func TestIsNodeBuiltin(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"fs", true},
		{"node:fs", true},
		{"fs/promises", true},
		{"tls", true},
		{"net", true},
		{"lodash", false},
		{"node:lodash", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNodeBuiltin(tt.name))
		})
	}
}
