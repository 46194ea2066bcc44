package resolve

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the complete resolver-override configuration for one bundle.
// It is constructed once per build invocation and never mutated afterwards.
// A server bundle uses a zero Config: no aliases, no replacements, no
// disabled fallbacks.
type Config struct {
	// Aliases are evaluated in two passes: all exact rules first, then all
	// prefix rules in declaration order.
	Aliases []Rule `json:"aliases"`

	// Replacements run against resolved file paths, after default resolution
	// and only when no alias matched.
	Replacements []ReplacementRule `json:"replacements"`

	// Fallbacks maps Node builtin module names to false, meaning the browser
	// bundle resolves them to no implementation instead of a polyfill.
	Fallbacks map[string]bool `json:"fallbacks,omitempty"`
}

// IsZero reports whether the Config carries no overrides at all.
func (c Config) IsZero() bool {
	return len(c.Aliases) == 0 && len(c.Replacements) == 0 && len(c.Fallbacks) == 0
}

// Validate checks every rule and reports the first problem, wrapped with the
// offending specifier. Duplicate exact specifiers are rejected so repeated
// configuration runs cannot accumulate rules.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Aliases))
	for _, r := range c.Aliases {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("alias %q: %w", r.Specifier, err)
		}
		key := r.Specifier
		if r.Prefix {
			key += "*"
		}
		if seen[key] {
			return fmt.Errorf("alias %q: %w", r.Specifier, ErrDuplicateRule)
		}
		seen[key] = true
	}
	for i, r := range c.Replacements {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("replacement %d: %w", i, err)
		}
	}
	return nil
}

// Resolve looks up an import specifier in the alias table. The boolean is
// false when no rule matches and the host bundler's default resolution
// should proceed.
//
// Exact rules win over prefix rules, so "three/webgpu" hits its stub entry
// even though the "three/" prefix rule would also match.
func (c Config) Resolve(specifier string) (Target, bool) {
	for _, r := range c.Aliases {
		if !r.Prefix && r.Specifier == specifier {
			return r.Target, true
		}
	}
	for _, r := range c.Aliases {
		if r.Prefix && strings.HasPrefix(specifier, r.Specifier) {
			t := r.Target
			if t.SubpathPreserving {
				// Specifiers are slash-separated; Path is a filesystem path.
				rest := strings.TrimPrefix(specifier, r.Specifier)
				if rest != "" {
					t.Path = filepath.Join(t.Path, filepath.FromSlash(rest))
				}
			}
			return t, true
		}
	}
	return Target{}, false
}

// ReplaceResolved applies the path-pattern replacement rules to the file
// path default resolution chose. First matching rule wins. The boolean is
// false when the path passes through untouched.
func (c Config) ReplaceResolved(resolvedPath string) (Target, bool) {
	for _, r := range c.Replacements {
		if r.Matches(resolvedPath) {
			return r.Target, true
		}
	}
	return Target{}, false
}
