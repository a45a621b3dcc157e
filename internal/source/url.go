// SPDX-License-Identifier: MIT

package source

import (
	"net/url"
	"strings"
)

// Redact strips user info and query parameters so a reference can be logged.
// Guide URLs often carry access tokens in the query.
func Redact(ref string) string {
	if !IsRemote(ref) {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "invalid-url-redacted"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// parseDirectHTTPURL accepts only absolute http(s) URLs with a host and
// without embedded credentials.
func parseDirectHTTPURL(s string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}
	if u.Host == "" || u.User != nil {
		return nil, false
	}
	return u, true
}
