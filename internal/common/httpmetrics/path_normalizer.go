package httpmetrics

import "strings"

const unmatched = "{unmatched}"

// NormalizePath labels requests that matched no route. Only the first
// segment is kept so scanners probing random paths add one series, not many.
func NormalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}

	first, rest, _ := strings.Cut(trimmed, "/")
	if first != "api" {
		return "/" + unmatched
	}
	if rest == "" {
		return "/api"
	}
	return "/api/" + unmatched
}
