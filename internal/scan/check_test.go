package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightglobe/threeshim/internal/stubs"
	"github.com/flightglobe/threeshim/pkg/resolve"
)

func TestCheckCapabilities_SatisfiedContract(t *testing.T) {
	imports := []Import{
		{File: "/nm/three-globe/dist/index.mjs", Specifier: "three/tsl", Names: []string{"Fn", "Node"}},
		{File: "/nm/globe.gl/dist/index.mjs", Specifier: "three/webgpu", Names: []string{"WebGPURenderer"}},
		{File: "/nm/globe.gl/dist/index.mjs", Specifier: "three/tsl", Names: []string{"default"}},
		// Non-stubbed specifiers are not the contract's business.
		{File: "/nm/globe.gl/dist/index.mjs", Specifier: "three", Names: []string{"Vector3"}},
	}

	assert.NoError(t, CheckCapabilities(imports, stubs.Subsystems()))
}

func TestCheckCapabilities_MissingExport(t *testing.T) {
	imports := []Import{
		{File: "/nm/three-globe/dist/index.mjs", Specifier: "three/tsl", Names: []string{"Fn", "uniform"}},
		{File: "/nm/globe.gl/dist/index.mjs", Specifier: "three/webgpu", Names: []string{"StorageBufferAttribute"}},
	}

	err := CheckCapabilities(imports, stubs.Subsystems())
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrMissingExport)

	// Every drifted name is reported, not just the first.
	assert.Contains(t, err.Error(), `"uniform"`)
	assert.Contains(t, err.Error(), `"StorageBufferAttribute"`)
	assert.Contains(t, err.Error(), "/nm/three-globe/dist/index.mjs")
}

func TestCheckCapabilities_NoImports(t *testing.T) {
	assert.NoError(t, CheckCapabilities(nil, stubs.Subsystems()))
}

func TestCheckCapabilities_SideEffectImportAlwaysSatisfied(t *testing.T) {
	// A bare import only requires the module to exist, which every stub does.
	imports := []Import{
		{File: "/nm/x/index.js", Specifier: "three/webgpu"},
	}
	assert.NoError(t, CheckCapabilities(imports, stubs.Subsystems()))
}
