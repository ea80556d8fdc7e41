package app

import (
	"regexp"
	"strings"
)

// Span attributes stay bounded: traced statements are collapsed to a
// single line and truncated past this length.
const tracedQueryLimit = 512

var whitespaceRun = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	flat := whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}
	return flat
}
