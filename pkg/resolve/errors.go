package resolve

import "errors"

// Configuration errors. All are fatal: the build must abort before module
// graph traversal begins.
var (
	ErrLibraryNotInstalled = errors.New("canonical graphics library is not installed")
	ErrEmptySpecifier      = errors.New("rule specifier must not be empty")
	ErrUnknownTargetKind   = errors.New("unknown resolution target kind")
	ErrMissingTargetPath   = errors.New("resolution target path must not be empty")
	ErrDuplicateRule       = errors.New("duplicate rule for specifier")
	ErrNilPattern          = errors.New("replacement rule pattern must not be nil")
	ErrUnknownFallback     = errors.New("fallback key is not a Node builtin module")
)

// Contract errors raised by the static capability check and by host
// configuration wiring.
var (
	ErrMissingExport    = errors.New("stub does not provide a named export consumed downstream")
	ErrHostConfigShape  = errors.New("host bundler configuration has unexpected shape")
	ErrUnknownSubsystem = errors.New("unknown stubbed subsystem")
)

// configErrors enumerates every sentinel a caller can correct by fixing the
// project or its configuration, as opposed to system failures.
var configErrors = []error{
	ErrLibraryNotInstalled,
	ErrEmptySpecifier,
	ErrUnknownTargetKind,
	ErrMissingTargetPath,
	ErrDuplicateRule,
	ErrNilPattern,
	ErrUnknownFallback,
	ErrMissingExport,
	ErrHostConfigShape,
	ErrUnknownSubsystem,
}

// IsConfigError reports whether err wraps any configuration or contract
// sentinel from this package.
func IsConfigError(err error) bool {
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
