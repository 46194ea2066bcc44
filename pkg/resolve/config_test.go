package resolve

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "/repo/node_modules/three"

// testConfig mirrors the override table a client build constructs: one
// canonical library, two stubs, two nested copies.
func testConfig() Config {
	lib := Target{Kind: TargetLibrary, Path: canonical}
	return Config{
		Aliases: []Rule{
			{Specifier: "three", Target: lib},
			{Specifier: "three/webgpu", Target: Target{Kind: TargetStub, Path: "/repo/.threeshim/webgpu.stub.js"}},
			{Specifier: "three/tsl", Target: Target{Kind: TargetStub, Path: "/repo/.threeshim/tsl.stub.js"}},
			{Specifier: "globe.gl/node_modules/three", Target: lib},
			{Specifier: "three-globe/node_modules/three", Target: lib},
			{Specifier: "three/", Prefix: true, Target: Target{Kind: TargetLibrary, Path: canonical, SubpathPreserving: true}},
		},
		Replacements: []ReplacementRule{
			{Pattern: regexp.MustCompile(`(^|[\\/])three[\\/]webgpu(\.|[\\/]|$)`), Target: Target{Kind: TargetStub, Path: "/repo/.threeshim/webgpu.stub.js"}},
			{Pattern: regexp.MustCompile(`(^|[\\/])three[\\/]tsl(\.|[\\/]|$)`), Target: Target{Kind: TargetStub, Path: "/repo/.threeshim/tsl.stub.js"}},
		},
		Fallbacks: map[string]bool{"fs": false, "net": false, "tls": false},
	}
}

func TestConfigResolve_DuplicateInstanceFreedom(t *testing.T) {
	cfg := testConfig()

	// Every specifier class that means "the library" must converge on the
	// single canonical path.
	for _, spec := range []string{
		"three",
		"globe.gl/node_modules/three",
		"three-globe/node_modules/three",
	} {
		got, ok := cfg.Resolve(spec)
		require.True(t, ok, "specifier %q must be overridden", spec)
		assert.Equal(t, TargetLibrary, got.Kind)
		assert.Equal(t, canonical, got.Path, "specifier %q", spec)
	}
}

func TestConfigResolve_ExactWinsOverPrefix(t *testing.T) {
	cfg := testConfig()

	got, ok := cfg.Resolve("three/webgpu")
	require.True(t, ok)
	assert.Equal(t, TargetStub, got.Kind)
	assert.Equal(t, "/repo/.threeshim/webgpu.stub.js", got.Path)

	got, ok = cfg.Resolve("three/tsl")
	require.True(t, ok)
	assert.Equal(t, TargetStub, got.Kind)
}

func TestConfigResolve_PrefixPreservesSubpath(t *testing.T) {
	cfg := testConfig()

	got, ok := cfg.Resolve("three/examples/jsm/controls/OrbitControls.js")
	require.True(t, ok)
	assert.Equal(t, TargetLibrary, got.Kind)

	// The joined subpath uses the platform separator throughout.
	want := filepath.Join(canonical, "examples", "jsm", "controls", "OrbitControls.js")
	assert.Equal(t, want, got.Path)
}

func TestConfigResolve_NoOverride(t *testing.T) {
	cfg := testConfig()

	tests := []string{
		"react",
		"globe.gl",
		"three-globe",
		"threejs-extras", // shares the "three" prefix but not the "three/" one
	}
	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, ok := cfg.Resolve(spec)
			assert.False(t, ok, "specifier %q must fall through to default resolution", spec)
		})
	}
}

func TestConfigReplaceResolved(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		path     string
		wantStub string
		wantHit  bool
	}{
		{
			name:     "webgpu entry file",
			path:     "/repo/node_modules/three/webgpu.js",
			wantStub: "/repo/.threeshim/webgpu.stub.js",
			wantHit:  true,
		},
		{
			name:     "tsl re-export inside build dir",
			path:     "/repo/node_modules/globe.gl/node_modules/three/tsl/index.js",
			wantStub: "/repo/.threeshim/tsl.stub.js",
			wantHit:  true,
		},
		{
			name:    "main library entry passes through",
			path:    "/repo/node_modules/three/build/three.module.js",
			wantHit: false,
		},
		{
			name:    "unrelated module passes through",
			path:    "/repo/node_modules/react/index.js",
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.ReplaceResolved(tt.path)
			require.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, TargetStub, got.Kind)
				assert.Equal(t, tt.wantStub, got.Path)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("well-formed table passes", func(t *testing.T) {
		require.NoError(t, testConfig().Validate())
	})

	t.Run("duplicate exact specifier rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Aliases = append(cfg.Aliases, Rule{
			Specifier: "three",
			Target:    Target{Kind: TargetLibrary, Path: "/elsewhere"},
		})
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateRule)
	})

	t.Run("nil replacement pattern rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Replacements = append(cfg.Replacements, ReplacementRule{
			Target: Target{Kind: TargetStub, Path: "/stub"},
		})
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNilPattern)
	})
}

func TestConfigIsZero(t *testing.T) {
	assert.True(t, Config{}.IsZero())
	assert.False(t, testConfig().IsZero())
}
