// Package scan statically extracts import usage from installed JavaScript
// packages so the stub export contract can be checked at configuration time
// instead of failing deep inside a bundle run.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Import is one import occurrence found in a scanned source file.
type Import struct {
	// File is the absolute path of the module containing the import.
	File string
	// Specifier as written in source.
	Specifier string
	// Names lists the named bindings taken from the specifier. A default
	// import or namespace import is recorded as "default"; a bare
	// side-effect import or require records no names.
	Names []string
}

// Source extensions the scanner reads.
var sourceExts = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// Import statement forms. The scanner is textual on purpose: it runs against
// published package output, which is flat enough that full parsing buys
// nothing over these patterns.
var (
	reNamed      = regexp.MustCompile(`import\s*(?:([A-Za-z_$][\w$]*)\s*,\s*)?\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reDefault    = regexp.MustCompile(`import\s+([A-Za-z_$][\w$]*)\s+from\s*['"]([^'"]+)['"]`)
	reNamespace  = regexp.MustCompile(`import\s*\*\s*as\s*[A-Za-z_$][\w$]*\s*from\s*['"]([^'"]+)['"]`)
	reSideEffect = regexp.MustCompile(`import\s*['"]([^'"]+)['"]`)
	reExportFrom = regexp.MustCompile(`export\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reExportAll  = regexp.MustCompile(`export\s*\*\s*from\s*['"]([^'"]+)['"]`)
	reRequire    = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	reDynamic    = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)
)

// File extracts every import occurrence from one source file.
func File(path string) ([]Import, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}
	return Source(abs, string(data)), nil
}

// Source extracts import occurrences from already-loaded file content.
func Source(file, content string) []Import {
	var imports []Import

	for _, m := range reNamed.FindAllStringSubmatch(content, -1) {
		names := parseNamedList(m[2])
		if m[1] != "" {
			names = append([]string{"default"}, names...)
		}
		imports = append(imports, Import{File: file, Specifier: m[3], Names: names})
	}
	for _, m := range reDefault.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[2], Names: []string{"default"}})
	}
	for _, m := range reNamespace.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[1], Names: []string{"default"}})
	}
	for _, m := range reExportFrom.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[2], Names: parseNamedList(m[1])})
	}
	for _, m := range reExportAll.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[1]})
	}
	for _, m := range reSideEffect.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[1]})
	}
	for _, m := range reRequire.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[1]})
	}
	for _, m := range reDynamic.FindAllStringSubmatch(content, -1) {
		imports = append(imports, Import{File: file, Specifier: m[1]})
	}

	return dedupe(imports)
}

// Packages scans the published sources of the named packages under the
// project's node_modules tree.
func Packages(projectRoot string, packages []string) ([]Import, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	var all []Import
	for _, pkg := range packages {
		dir := filepath.Join(root, "node_modules", pkg)
		imports, err := Dir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				// Not installed; nothing to check for this package.
				continue
			}
			return nil, err
		}
		all = append(all, imports...)
	}
	return all, nil
}

// Dir scans every JavaScript source below dir, skipping nested node_modules
// trees (their imports are checked through their own host package entry).
func Dir(dir string) ([]Import, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	var all []Import
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[filepath.Ext(path)] {
			return nil
		}
		imports, err := File(path)
		if err != nil {
			return err
		}
		all = append(all, imports...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return all, nil
}

// parseNamedList splits the inside of an import brace list into exported
// names, resolving "X as Y" to the exported name X.
func parseNamedList(list string) []string {
	var names []string
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, " as "); idx >= 0 {
			part = strings.TrimSpace(part[:idx])
		}
		names = append(names, part)
	}
	return names
}

// dedupe collapses identical (file, specifier) occurrences, merging names.
func dedupe(imports []Import) []Import {
	type key struct{ file, spec string }
	merged := make(map[key]*Import)
	var order []key

	for _, imp := range imports {
		k := key{imp.File, imp.Specifier}
		if existing, ok := merged[k]; ok {
			existing.Names = mergeNames(existing.Names, imp.Names)
			continue
		}
		cp := imp
		merged[k] = &cp
		order = append(order, k)
	}

	out := make([]Import, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out
}

func mergeNames(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			a = append(a, n)
			seen[n] = true
		}
	}
	return a
}
