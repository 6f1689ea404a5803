package config

import "errors"

// Sentinel errors for the config package
var (
	// ErrInvalidManifestVersion indicates a manifest schema version other
	// than 2 or 3
	ErrInvalidManifestVersion = errors.New("manifest_version must be 2 or 3")

	// ErrInvalidMode indicates a mode other than production or development
	ErrInvalidMode = errors.New("mode must be production or development")

	// ErrInvalidCommand indicates a command other than build or serve
	ErrInvalidCommand = errors.New("command must be build or serve")
)
