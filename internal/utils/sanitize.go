package utils

import (
	"html" // Entity decoding

	"github.com/microcosm-cc/bluemonday" // HTML sanitizer
)

var (
	richTextPolicy  = bluemonday.UGCPolicy()    // Editor output: safe formatting tags only
	plainTextPolicy = bluemonday.StrictPolicy() // Headlines and names: no markup at all
)

// SanitizeHTML strips unsafe markup from editor content
func SanitizeHTML(s string) string {
	return richTextPolicy.Sanitize(s)
}

// StripHTML removes all markup and returns plain text.
// The policy escapes its output, so entities are decoded again; JSON clients escape on render.
func StripHTML(s string) string {
	return html.UnescapeString(plainTextPolicy.Sanitize(s))
}
