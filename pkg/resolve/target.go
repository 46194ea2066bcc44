package resolve

// TargetKind classifies what a matched import specifier resolves to.
type TargetKind string

// Target kinds.
const (
	// TargetLibrary redirects to the canonical installed library root.
	TargetLibrary TargetKind = "library"
	// TargetStub redirects to a compatibility stub module.
	TargetStub TargetKind = "stub"
	// TargetDisabled resolves to no implementation at all (used for Node
	// builtin fallbacks the browser bundle must not pull in).
	TargetDisabled TargetKind = "disabled"
)

// validTargetKinds is the set of recognized target kinds.
var validTargetKinds = map[TargetKind]bool{
	TargetLibrary:  true,
	TargetStub:     true,
	TargetDisabled: true,
}

// Target is where a matched import resolves. Path is an absolute filesystem
// path for library and stub targets and empty for disabled targets.
type Target struct {
	Kind TargetKind `json:"kind"`
	Path string     `json:"path,omitempty"`

	// SubpathPreserving carries the remainder of a prefix-matched specifier
	// onto Path, so "three/examples/x" lands under the canonical root rather
	// than at it.
	SubpathPreserving bool `json:"subpath_preserving,omitempty"`
}

// Validate checks that the Target is well-formed. It returns a sentinel
// error from this package on failure.
func (t Target) Validate() error {
	if !validTargetKinds[t.Kind] {
		return ErrUnknownTargetKind
	}
	if t.Kind != TargetDisabled && t.Path == "" {
		return ErrMissingTargetPath
	}
	return nil
}
