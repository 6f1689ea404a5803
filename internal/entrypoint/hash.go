package entrypoint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// ResolvedContentScript is a content script's options after per-browser
// resolution. Two entrypoints with equal resolved options are the same
// script as far as the browser is concerned and collapse into one
// manifest entry.
type ResolvedContentScript struct {
	Matches         []string         `json:"matches"`
	ExcludeMatches  []string         `json:"exclude_matches,omitempty"`
	RunAt           string           `json:"run_at,omitempty"`
	AllFrames       *bool            `json:"all_frames,omitempty"`
	MatchAboutBlank *bool            `json:"match_about_blank,omitempty"`
	World           string           `json:"world,omitempty"`
	CSSInjection    CSSInjectionMode `json:"css_injection_mode,omitempty"`
	Type            ScriptType       `json:"type,omitempty"`
}

// Resolve applies per-browser resolution for the given target browser.
func (o *ContentScriptOptions) Resolve(browser string) ResolvedContentScript {
	return ResolvedContentScript{
		Matches:         o.Matches.Resolve(browser),
		ExcludeMatches:  o.ExcludeMatches.Resolve(browser),
		RunAt:           o.RunAt,
		AllFrames:       o.AllFrames,
		MatchAboutBlank: o.MatchAboutBlank,
		World:           o.World,
		CSSInjection:    o.CSSInjection,
		Type:            o.Type,
	}
}

// Hash returns a stable hex digest of the resolved options. The options
// are serialized as RFC 8785 canonical JSON before hashing, so key order
// never influences the digest.
func (r ResolvedContentScript) Hash() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to serialize content script options: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize content script options: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
