package bundler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

// hostDoc is the bundler-facing shape of a Config: a resolver-alias map, a
// fallback map, and a module-replacement rule list. The host's build
// configuration ingests this document verbatim for the client bundle.
type hostDoc struct {
	Resolve      hostResolve       `json:"resolve"`
	Replacements []hostReplacement `json:"replacements,omitempty"`
}

type hostResolve struct {
	// Alias keys follow the host resolver's convention: exact matches carry
	// a trailing "$", prefix matches are bare names.
	Alias map[string]string `json:"alias,omitempty"`
	// Fallback maps disabled builtins to false ("no implementation").
	Fallback map[string]any `json:"fallback,omitempty"`
}

type hostReplacement struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
}

// toHostDoc converts a Config to the host document shape.
func toHostDoc(cfg resolve.Config) hostDoc {
	doc := hostDoc{}

	if len(cfg.Aliases) > 0 {
		doc.Resolve.Alias = make(map[string]string, len(cfg.Aliases))
		for _, r := range cfg.Aliases {
			if r.Prefix {
				doc.Resolve.Alias[strings.TrimSuffix(r.Specifier, "/")] = r.Target.Path
			} else {
				doc.Resolve.Alias[r.Specifier+"$"] = r.Target.Path
			}
		}
	}

	if len(cfg.Fallbacks) > 0 {
		doc.Resolve.Fallback = make(map[string]any, len(cfg.Fallbacks))
		for name, enabled := range cfg.Fallbacks {
			if !enabled {
				doc.Resolve.Fallback[name] = false
			}
		}
	}

	for _, r := range cfg.Replacements {
		doc.Replacements = append(doc.Replacements, hostReplacement{
			Pattern: r.Pattern.String(),
			Path:    r.Target.Path,
		})
	}

	return doc
}

// EmitJSON renders a Config as the JSON document the host bundler
// configuration ingests. Output is deterministic for equal configs.
func EmitJSON(cfg resolve.Config) ([]byte, error) {
	data, err := json.MarshalIndent(toHostDoc(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resolver config: %w", err)
	}
	return append(data, '\n'), nil
}

// ApplyToHost installs a Config onto a host bundler configuration object in
// place. The host object must expose "resolve" as an object (created when
// absent) and "replacements" as a list (created when absent); anything else
// is a shape mismatch and fails the build rather than being skipped.
func ApplyToHost(cfg resolve.Config, host map[string]any) error {
	if host == nil {
		return fmt.Errorf("%w: host configuration is nil", resolve.ErrHostConfigShape)
	}
	if cfg.IsZero() {
		// Server bundle: leave the host untouched.
		return nil
	}

	doc := toHostDoc(cfg)

	res, err := ensureObject(host, "resolve")
	if err != nil {
		return err
	}
	if len(doc.Resolve.Alias) > 0 {
		alias, err := ensureObject(res, "alias")
		if err != nil {
			return err
		}
		for k, v := range doc.Resolve.Alias {
			alias[k] = v
		}
	}
	if len(doc.Resolve.Fallback) > 0 {
		fallback, err := ensureObject(res, "fallback")
		if err != nil {
			return err
		}
		for k, v := range doc.Resolve.Fallback {
			fallback[k] = v
		}
	}

	if len(doc.Replacements) > 0 {
		existing, ok := host["replacements"]
		if !ok {
			existing = []any{}
		}
		list, isList := existing.([]any)
		if !isList {
			return fmt.Errorf("%w: %q is %T, expected a list",
				resolve.ErrHostConfigShape, "replacements", existing)
		}
		for _, r := range doc.Replacements {
			list = append(list, map[string]any{"pattern": r.Pattern, "path": r.Path})
		}
		host["replacements"] = list
	}

	return nil
}

// ensureObject returns host[key] as an object, creating it when absent.
func ensureObject(host map[string]any, key string) (map[string]any, error) {
	existing, ok := host[key]
	if !ok {
		obj := map[string]any{}
		host[key] = obj
		return obj, nil
	}
	obj, isObj := existing.(map[string]any)
	if !isObj {
		return nil, fmt.Errorf("%w: %q is %T, expected an object",
			resolve.ErrHostConfigShape, key, existing)
	}
	return obj, nil
}
