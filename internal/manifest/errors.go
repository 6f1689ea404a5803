package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrInvalidVersion indicates a version string without a valid
	// numeric-dotted prefix (1-4 dot-separated numbers, each 0 or 1-9
	// followed by up to 8 digits)
	ErrInvalidVersion = errors.New("version must start with 1-4 dot-separated numbers without leading zeros")

	// ErrMissingName indicates the assembled manifest has no name
	ErrMissingName = errors.New(`manifest "name" is missing: set pkg.name in your project config or name in the manifest overrides`)

	// ErrMissingVersion indicates the assembled manifest has no version
	ErrMissingVersion = errors.New(`manifest "version" is missing: set pkg.version in your project config or version in the manifest overrides`)
)
