// Package csp parses and manipulates Content-Security-Policy strings.
//
// A policy is an ordered list of directives, each holding an ordered,
// de-duplicated list of source tokens. Serialization reproduces the
// directive order from parsing, so an unmodified policy round-trips
// losslessly.
package csp

import "strings"

// Policy is a parsed Content-Security-Policy.
type Policy struct {
	order   []string
	sources map[string][]string
}

// New creates an empty policy.
func New() *Policy {
	return &Policy{sources: make(map[string][]string)}
}

// Parse parses a semicolon-delimited CSP string into a Policy.
// Malformed segments (no directive name) are skipped.
func Parse(raw string) *Policy {
	p := New()
	for _, segment := range strings.Split(raw, ";") {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}
		p.Add(fields[0], fields[1:]...)
	}
	return p
}

// Add appends sources to a directive, creating the directive if absent.
// Sources already present in the directive are ignored, so Add is
// idempotent. A newly created directive starts with only the sources
// given here; it does not inherit from any other directive.
func (p *Policy) Add(directive string, sources ...string) *Policy {
	existing, ok := p.sources[directive]
	if !ok {
		p.order = append(p.order, directive)
	}
	for _, source := range sources {
		if !contains(existing, source) {
			existing = append(existing, source)
		}
	}
	p.sources[directive] = existing
	return p
}

// Has reports whether the policy contains a directive.
func (p *Policy) Has(directive string) bool {
	_, ok := p.sources[directive]
	return ok
}

// Sources returns the source tokens of a directive in insertion order.
func (p *Policy) Sources(directive string) []string {
	return p.sources[directive]
}

// String serializes the policy. Each directive is rendered as
// "<name> <sources...>;" and directives are joined with a single space,
// preserving first-encountered order.
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.order))
	for _, directive := range p.order {
		tokens := append([]string{directive}, p.sources[directive]...)
		parts = append(parts, strings.Join(tokens, " ")+";")
	}
	return strings.Join(parts, " ")
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
