package utils

import (
	"net/url"
	"strings"
)

func EnsureSuffix(s, suffix string) string {
	if strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}

// EscapeQueryComponent escapes s for use as a query value, writing spaces as %20
// rather than '+'.
func EscapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
