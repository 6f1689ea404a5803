package entrypoint

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PerBrowserStrings is a string list that may be declared once for all
// browsers or as a mapping from browser id to list:
//
//	matches:
//	  - "*://*.example.com/*"
//
//	matches:
//	  chrome: ["*://*.example.com/*"]
//	  firefox: ["*://*.example.org/*"]
type PerBrowserStrings struct {
	all       []string
	byBrowser map[string][]string
}

// NewPerBrowserStrings builds a value shared by all browsers.
func NewPerBrowserStrings(values ...string) PerBrowserStrings {
	return PerBrowserStrings{all: values}
}

// NewBrowserStrings builds a browser-keyed value.
func NewBrowserStrings(byBrowser map[string][]string) PerBrowserStrings {
	return PerBrowserStrings{byBrowser: byBrowser}
}

// Resolve returns the list for the given target browser. A plain list
// applies to every browser; a browser-keyed mapping yields the entry for
// that browser, or nil when the browser has none.
func (p PerBrowserStrings) Resolve(browser string) []string {
	if p.byBrowser != nil {
		return cloneStrings(p.byBrowser[browser])
	}
	return cloneStrings(p.all)
}

// IsZero reports whether no value was declared at all.
func (p PerBrowserStrings) IsZero() bool {
	return p.all == nil && p.byBrowser == nil
}

// UnmarshalYAML decodes either a sequence or a browser-keyed mapping.
func (p *PerBrowserStrings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPerBrowser, err)
		}
		p.all = list
		p.byBrowser = nil
		return nil
	case yaml.MappingNode:
		var byBrowser map[string][]string
		if err := node.Decode(&byBrowser); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPerBrowser, err)
		}
		p.byBrowser = byBrowser
		p.all = nil
		return nil
	case 0:
		return nil
	default:
		if node.Tag == "!!null" {
			return nil
		}
		return ErrInvalidPerBrowser
	}
}

// UnmarshalJSON decodes either an array or a browser-keyed object.
func (p *PerBrowserStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		p.all = list
		p.byBrowser = nil
		return nil
	}
	var byBrowser map[string][]string
	if err := json.Unmarshal(data, &byBrowser); err == nil {
		p.byBrowser = byBrowser
		p.all = nil
		return nil
	}
	return ErrInvalidPerBrowser
}

func cloneStrings(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
