package utils

import (
	"html"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag, leaving only text content.
var stripPolicy = bluemonday.StrictPolicy()

// PlainText projects possibly-markup text down to its rendered text content.
// Tweet length limits apply to this projection, not to the raw source.
func PlainText(s string) string {
	// Sanitize escapes the surviving text, so unescape to get the characters
	// a reader would actually see.
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// PlainTextLength counts the characters of the plain-text projection.
func PlainTextLength(s string) int {
	return utf8.RuneCountInString(PlainText(s))
}
