package scan

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// Graph is the directed import graph over scanned sources: file vertices
// point at the specifiers they import.
type Graph struct {
	g graphlib.Graph[string, string]
}

// BuildGraph folds scanned imports into an import graph. Duplicate vertices
// and edges are tolerated so the same scan can be folded in more than once.
func BuildGraph(imports []Import) (*Graph, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, imp := range imports {
		if err := g.AddVertex(imp.File); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("adding vertex %s: %w", imp.File, err)
		}
		if err := g.AddVertex(imp.Specifier); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("adding vertex %s: %w", imp.Specifier, err)
		}
		err := g.AddEdge(imp.File, imp.Specifier)
		if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("adding edge %s -> %s: %w", imp.File, imp.Specifier, err)
		}
	}

	return &Graph{g: g}, nil
}

// Consumers returns the files that import a specifier, sorted for stable
// output. This is what names the transitive dependency dragging a stubbed
// subsystem into the bundle.
func (gr *Graph) Consumers(specifier string) ([]string, error) {
	preds, err := gr.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("building predecessor map: %w", err)
	}

	edges, ok := preds[specifier]
	if !ok {
		return nil, nil
	}
	files := make([]string, 0, len(edges))
	for file := range edges {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}
