// Package sanitize strips markup from user-supplied plain-text fields such as
// display names before they are stored. Uses bluemonday's strict policy, so
// every tag is removed and only text content survives.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// PlainText removes all HTML from input and trims surrounding whitespace.
// bluemonday escapes text it keeps; the escaping is undone because the result
// is stored and served as JSON, not HTML. An empty input stays empty.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(getPolicy().Sanitize(input)))
}
