// Package urlutils provides URL checks for feed base URLs.
package urlutils

import (
	"net/url"
	"strings"
)

// IsValidURL checks if a URL is valid
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// HasTrailingSlash reports whether entry ids built on baseURL will be
// separated from the file name. Ids are plain concatenations, so a base URL
// without a trailing slash glues the file name onto its last segment.
func HasTrailingSlash(baseURL string) bool {
	return strings.HasSuffix(baseURL, "/")
}
