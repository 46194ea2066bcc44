// Package stubs carries the compatibility stub modules for the graphics
// library's unused optional subsystems and the export contract each stub
// promises to its consumers.
//
// The registry is data-driven: a future dependency upgrade that introduces
// another stub-eligible subsystem is one more Subsystem entry plus an
// embedded file, not new wiring.
package stubs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

//go:embed webgpu.stub.js
var webgpuStubJS []byte

//go:embed tsl.stub.js
var tslStubJS []byte

// ExportKind classifies a stub's named export.
type ExportKind string

// Export kinds.
const (
	ExportFunction ExportKind = "function"
	ExportClass    ExportKind = "class"
)

// Export is one named construct a stub provides.
type Export struct {
	Name string
	Kind ExportKind
}

// Subsystem describes one stubbed entry point of the graphics library.
type Subsystem struct {
	// Specifier is the import specifier the stub replaces, e.g. "three/tsl".
	Specifier string
	// FileName of the materialized stub module.
	FileName string
	// Exports is the contract: every named import any downstream package
	// takes from Specifier must appear here, or bundling fails.
	Exports []Export

	source []byte
}

// Subsystems returns the registry of stubbed subsystems. The slice and its
// contents are freshly allocated per call; callers may not mutate shared
// state through it.
func Subsystems() []Subsystem {
	return []Subsystem{
		{
			Specifier: "three/webgpu",
			FileName:  "webgpu.stub.js",
			Exports: []Export{
				{Name: "WebGPURenderer", Kind: ExportClass},
			},
			source: webgpuStubJS,
		},
		{
			Specifier: "three/tsl",
			FileName:  "tsl.stub.js",
			Exports: []Export{
				{Name: "Fn", Kind: ExportFunction},
				{Name: "Node", Kind: ExportClass},
				{Name: "NodeMaterial", Kind: ExportClass},
			},
			source: tslStubJS,
		},
	}
}

// Lookup returns the subsystem registered for a specifier.
func Lookup(specifier string) (Subsystem, error) {
	for _, s := range Subsystems() {
		if s.Specifier == specifier {
			return s, nil
		}
	}
	return Subsystem{}, fmt.Errorf("%w: %s", resolve.ErrUnknownSubsystem, specifier)
}

// ExportSet returns the importable names of a subsystem, including the
// "default" interop form every stub provides.
func (s Subsystem) ExportSet() map[string]bool {
	set := make(map[string]bool, len(s.Exports)+1)
	for _, e := range s.Exports {
		set[e.Name] = true
	}
	set["default"] = true
	return set
}

// Write materializes every stub module under dir and returns a specifier to
// absolute-stub-path mapping for the override table. Existing files are
// overwritten so repeated configuration runs converge on identical output.
func Write(dir string) (map[string]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving stub dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating stub dir: %w", err)
	}

	paths := make(map[string]string, len(Subsystems()))
	for _, s := range Subsystems() {
		path := filepath.Join(abs, s.FileName)
		if err := os.WriteFile(path, s.source, 0o644); err != nil {
			return nil, fmt.Errorf("writing stub %s: %w", s.FileName, err)
		}
		paths[s.Specifier] = path
	}
	return paths, nil
}
