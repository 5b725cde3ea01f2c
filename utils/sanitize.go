package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from plain-text fields such as titles and author names.
// The policy escapes entities on output; they are unescaped again so "Tom & Jerry"
// is stored as typed. Markdown bodies are not passed through here.
func SanitizeText(input string) string {
	out := input
	// Unescaping can expose tags that were written as entities; repeat until stable.
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}
