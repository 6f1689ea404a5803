package manifest

import (
	"regexp"

	"github.com/extforge/extforge/internal/build"
)

// iconPatterns are the public-asset naming conventions recognized as
// extension icons, tried in order with first match winning. The capture
// group is the icon size.
var iconPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^icon-([0-9]+)\.png$`),
	regexp.MustCompile(`^icon-([0-9]+)x[0-9]+\.png$`),
	regexp.MustCompile(`^icon@([0-9]+)w\.png$`),
	regexp.MustCompile(`^icon@([0-9]+)h\.png$`),
	regexp.MustCompile(`^icon@([0-9]+)\.png$`),
	regexp.MustCompile(`^icons?[/\\]([0-9]+)\.png$`),
	regexp.MustCompile(`^icons?[/\\]([0-9]+)x[0-9]+\.png$`),
}

// DiscoverIcons matches public asset filenames against the icon naming
// conventions and builds the manifest icons map (size key to path).
// When several assets claim the same size, the later asset wins. A nil
// map is returned when nothing matches, so the icons field can stay
// absent instead of being an empty object.
func DiscoverIcons(assets []build.PublicAsset) map[string]any {
	var icons map[string]any
	for _, asset := range assets {
		for _, pattern := range iconPatterns {
			groups := pattern.FindStringSubmatch(asset.FileName)
			if groups == nil {
				continue
			}
			if icons == nil {
				icons = make(map[string]any)
			}
			icons[groups[1]] = asset.FileName
			break
		}
	}
	return icons
}
