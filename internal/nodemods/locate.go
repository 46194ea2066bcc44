// Package nodemods locates installed npm packages under a project's
// node_modules tree: the single canonical copy of the graphics library and
// any nested private copies bundled inside downstream packages.
package nodemods

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

// LibraryName is the npm package name of the 3D graphics library all
// resolution must converge to.
const LibraryName = "three"

// Library describes one installed copy of the graphics library.
type Library struct {
	// Path is the absolute filesystem path of the package root.
	Path string
	// Version as declared in the copy's package.json.
	Version string
	// Host is the downstream package that bundles this copy; empty for the
	// project's own top-level copy.
	Host string
}

// packageJSON is the subset of package.json the locator reads.
type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// LocateCanonical returns the project's top-level installed copy of the
// graphics library. A missing copy is a configuration error and wraps
// resolve.ErrLibraryNotInstalled so the build fails before any module graph
// work starts.
func LocateCanonical(projectRoot string) (Library, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return Library{}, fmt.Errorf("resolving project root: %w", err)
	}

	dir := filepath.Join(root, "node_modules", LibraryName)
	pkg, err := readPackageJSON(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Library{}, fmt.Errorf("%w: expected %s (run the package install first)",
				resolve.ErrLibraryNotInstalled, dir)
		}
		return Library{}, fmt.Errorf("reading %s: %w", dir, err)
	}
	if pkg.Name != LibraryName {
		return Library{}, fmt.Errorf("%w: %s contains package %q, not %q",
			resolve.ErrLibraryNotInstalled, dir, pkg.Name, LibraryName)
	}

	return Library{Path: dir, Version: pkg.Version}, nil
}

// NestedCopies scans one level of nesting (node_modules/<pkg>/node_modules)
// for private copies of the graphics library, the npm layout for conflicting
// version constraints. The hosts slice limits the scan to the named
// downstream packages; a nil slice scans every installed package.
func NestedCopies(projectRoot string, hosts []string) ([]Library, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	if hosts == nil {
		hosts, err = installedPackages(filepath.Join(root, "node_modules"))
		if err != nil {
			return nil, err
		}
	}

	var copies []Library
	for _, host := range hosts {
		dir := filepath.Join(root, "node_modules", host, "node_modules", LibraryName)
		pkg, err := readPackageJSON(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		if pkg.Name != LibraryName {
			continue
		}
		copies = append(copies, Library{Path: dir, Version: pkg.Version, Host: host})
	}
	return copies, nil
}

// installedPackages lists package names directly under a node_modules
// directory, expanding @scope directories one level.
func installedPackages(nodeModules string) ([]string, error) {
	entries, err := os.ReadDir(nodeModules)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", nodeModules, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == ".bin" {
			continue
		}
		if e.Name()[0] == '@' {
			scoped, err := os.ReadDir(filepath.Join(nodeModules, e.Name()))
			if err != nil {
				return nil, fmt.Errorf("reading scope %s: %w", e.Name(), err)
			}
			for _, s := range scoped {
				if s.IsDir() {
					names = append(names, e.Name()+"/"+s.Name())
				}
			}
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// readPackageJSON parses the name and version out of dir/package.json.
func readPackageJSON(dir string) (packageJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return packageJSON{}, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return packageJSON{}, fmt.Errorf("parsing package.json: %w", err)
	}
	return pkg, nil
}
