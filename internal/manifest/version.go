package manifest

import (
	"fmt"
	"strings"
)

// maxVersionComponents is the most dot-separated numbers a browser
// accepts in an extension version.
const maxVersionComponents = 4

// SimplifyVersion normalizes an arbitrary semantic version string into
// the numeric-dotted form browsers accept: up to four dot-separated
// numbers, each 0 or 1-9 followed by up to 8 digits. Any trailing
// pre-release or build suffix is discarded, as are components after the
// first invalid one:
//
//	SimplifyVersion("1.2.3-beta.1") == "1.2.3"
//	SimplifyVersion("2024.01.01") == "2024"
//
// It fails with ErrInvalidVersion when the string does not begin with a
// valid component.
func SimplifyVersion(version string) (string, error) {
	var components []string
	rest := version

	for len(components) < maxVersionComponents {
		if len(components) > 0 {
			if !strings.HasPrefix(rest, ".") {
				break
			}
			run := digitRun(rest[1:])
			if !validVersionComponent(run) {
				break
			}
			components = append(components, run)
			rest = rest[1+len(run):]
			continue
		}

		run := digitRun(rest)
		if !validVersionComponent(run) {
			return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
		components = append(components, run)
		rest = rest[len(run):]
	}

	return strings.Join(components, "."), nil
}

// digitRun returns the maximal leading run of ASCII digits.
func digitRun(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// validVersionComponent reports whether run is a full version
// component: 1-9 digits with no unnecessary leading zero.
func validVersionComponent(run string) bool {
	if len(run) == 0 || len(run) > 9 {
		return false
	}
	if len(run) > 1 && run[0] == '0' {
		return false
	}
	return true
}
