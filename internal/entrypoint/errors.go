package entrypoint

import "errors"

// Sentinel errors for the entrypoint package
var (
	// ErrUnknownType indicates an entrypoint declaration with an
	// unrecognized type tag
	ErrUnknownType = errors.New("unknown entrypoint type")

	// ErrInvalidPerBrowser indicates a per-browser option value that is
	// neither a plain list nor a browser-keyed mapping
	ErrInvalidPerBrowser = errors.New("per-browser value must be a list or a browser-keyed mapping")
)
