package tools

import (
	"net/url"
	"strings"
)

func FullURL(baseURL, path string) string {
	if baseURL == "" {
		return ""
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if path == "" {
		return baseURL
	}
	return baseURL + "/" + strings.TrimPrefix(path, "/")
}

// PathSegments escapes each segment and joins them as "/a/b".
func PathSegments(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
