package stubs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

func TestSubsystems_Contract(t *testing.T) {
	subs := Subsystems()
	require.Len(t, subs, 2)

	tsl, err := Lookup("three/tsl")
	require.NoError(t, err)

	// One function-like construct plus two no-argument-constructible classes.
	var fns, classes int
	for _, e := range tsl.Exports {
		switch e.Kind {
		case ExportFunction:
			fns++
		case ExportClass:
			classes++
		}
	}
	assert.Equal(t, 1, fns)
	assert.Equal(t, 2, classes)

	gpu, err := Lookup("three/webgpu")
	require.NoError(t, err)
	assert.True(t, gpu.ExportSet()["WebGPURenderer"])
}

func TestExportSet_IncludesDefaultInterop(t *testing.T) {
	for _, s := range Subsystems() {
		assert.True(t, s.ExportSet()["default"], "subsystem %s", s.Specifier)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("three/nodes")
	assert.ErrorIs(t, err, resolve.ErrUnknownSubsystem)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	paths, err := Write(filepath.Join(dir, "stubs"))
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, s := range Subsystems() {
		path, ok := paths[s.Specifier]
		require.True(t, ok, "missing path for %s", s.Specifier)
		assert.True(t, filepath.IsAbs(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		body := string(data)

		// Every contracted name appears as a named export, and the default
		// interop form is present.
		for _, e := range s.Exports {
			assert.Contains(t, body, e.Name, "stub %s", s.FileName)
		}
		assert.Contains(t, body, "export default")
	}
}

func TestWrite_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stubs")

	first, err := Write(dir)
	require.NoError(t, err)
	second, err := Write(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStubSources_AreInert(t *testing.T) {
	// The stubs must mark everything they produce as visibly inert rather
	// than appearing to render.
	for _, s := range Subsystems() {
		if !strings.Contains(string(s.source), "isInertStub") {
			t.Errorf("stub %s does not mark its constructs inert", s.FileName)
		}
	}
}
