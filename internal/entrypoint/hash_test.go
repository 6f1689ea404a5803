package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvedContentScript_Hash(t *testing.T) {
	t.Run("stable across calls", func(t *testing.T) {
		opts := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://example.com/*"),
			RunAt:   "document_start",
		}

		first, err := opts.Resolve("chrome").Hash()
		require.NoError(t, err)
		second, err := opts.Resolve("chrome").Hash()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("equal resolutions hash equal regardless of declaration form", func(t *testing.T) {
		plain := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://example.com/*"),
		}
		mapped := &ContentScriptOptions{
			Matches: NewBrowserStrings(map[string][]string{
				"chrome": {"*://example.com/*"},
			}),
		}

		plainHash, err := plain.Resolve("chrome").Hash()
		require.NoError(t, err)
		mappedHash, err := mapped.Resolve("chrome").Hash()
		require.NoError(t, err)

		assert.Equal(t, plainHash, mappedHash)
	})

	t.Run("option differences change the hash", func(t *testing.T) {
		base := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://example.com/*"),
		}
		withRunAt := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://example.com/*"),
			RunAt:   "document_end",
		}

		baseHash, err := base.Resolve("chrome").Hash()
		require.NoError(t, err)
		otherHash, err := withRunAt.Resolve("chrome").Hash()
		require.NoError(t, err)

		assert.NotEqual(t, baseHash, otherHash)
	})

	t.Run("match order changes the hash", func(t *testing.T) {
		forward := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://a.example.com/*", "*://b.example.com/*"),
		}
		backward := &ContentScriptOptions{
			Matches: NewPerBrowserStrings("*://b.example.com/*", "*://a.example.com/*"),
		}

		forwardHash, err := forward.Resolve("chrome").Hash()
		require.NoError(t, err)
		backwardHash, err := backward.Resolve("chrome").Hash()
		require.NoError(t, err)

		assert.NotEqual(t, forwardHash, backwardHash)
	})
}

func TestContentScriptOptions_Resolve(t *testing.T) {
	allFrames := true
	opts := &ContentScriptOptions{
		Matches: NewBrowserStrings(map[string][]string{
			"chrome":  {"*://example.com/*"},
			"firefox": {"*://example.org/*"},
		}),
		ExcludeMatches: NewPerBrowserStrings("*://example.com/admin/*"),
		RunAt:          "document_idle",
		AllFrames:      &allFrames,
		World:          "ISOLATED",
	}

	chrome := opts.Resolve("chrome")
	assert.Equal(t, []string{"*://example.com/*"}, chrome.Matches)
	assert.Equal(t, []string{"*://example.com/admin/*"}, chrome.ExcludeMatches)
	assert.Equal(t, "document_idle", chrome.RunAt)
	assert.Equal(t, &allFrames, chrome.AllFrames)

	firefox := opts.Resolve("firefox")
	assert.Equal(t, []string{"*://example.org/*"}, firefox.Matches)
}
