package resolve

import "regexp"

// Rule is an alias entry: an exact or prefix specifier match redirected to a
// Target. Alias rules are evaluated before the host bundler's default
// node_modules resolution; a match skips default resolution entirely.
type Rule struct {
	// Specifier is the import specifier as written in source, e.g. "three"
	// or "globe.gl/node_modules/three". For prefix rules it is the prefix
	// including the trailing separator, e.g. "three/".
	Specifier string `json:"specifier"`

	// Prefix marks this rule as a prefix match over the specifier.
	Prefix bool `json:"prefix,omitempty"`

	Target Target `json:"target"`
}

// Validate checks that the Rule is well-formed.
func (r Rule) Validate() error {
	if r.Specifier == "" {
		return ErrEmptySpecifier
	}
	return r.Target.Validate()
}

// ReplacementRule is the second-line defense: it matches against the file
// path default resolution would otherwise have chosen and swaps in a stub.
// It catches import forms that bypass specifier-level aliases, such as a
// package's own internal re-exports.
type ReplacementRule struct {
	Pattern *regexp.Regexp `json:"-"`
	Target  Target         `json:"target"`
}

// Validate checks that the ReplacementRule is well-formed.
func (r ReplacementRule) Validate() error {
	if r.Pattern == nil {
		return ErrNilPattern
	}
	return r.Target.Validate()
}

// Matches reports whether the resolved path is intercepted by this rule.
func (r ReplacementRule) Matches(resolvedPath string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(resolvedPath)
}
