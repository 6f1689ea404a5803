// Package manifest assembles a browser extension's manifest.json from
// resolved build artifacts: compiled entrypoints, public assets and the
// project configuration. It reconciles the differences between manifest
// schema versions 2 and 3 and between target browsers.
//
// # Usage
//
// Generate a manifest from resolved inputs:
//
//	m, warnings, err := manifest.Generate(cfg, pkg, entrypoints, output)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range warnings {
//	    log.Warn().Msg(w.Message)
//	}
//
// Write it into the output directory:
//
//	w := manifest.NewWriter(manifest.WriterOptions{OutDir: cfg.OutDir})
//	path, err := w.Write(m, output)
//
// # Error Handling
//
// Generation either completes or fails synchronously. Unsupported
// browser/schema feature combinations are collected as warnings and the
// field is omitted; only a malformed extension version or a manifest
// missing name/version after full assembly is fatal:
//   - ErrInvalidVersion: version has no valid numeric-dotted prefix
//   - ErrMissingName: no name after assembly
//   - ErrMissingVersion: no version after assembly
package manifest
