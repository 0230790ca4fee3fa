package utils

import (
	"net/url"
	"strings"
)

// QueryTrim returns the trimmed value of key, or "" when absent.
func QueryTrim(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}
