package util

import (
	"net/url"
	"strings"
)

// NormalizeAffiliateLink canonicalizes an outbound affiliate URL before it
// is stored. Known tracking-network wrappers are unwrapped to the merchant
// URL, and Amazon links get the configured associate tag so clicks credit
// the right account. Returns the normalized URL and whether it changed.
func NormalizeAffiliateLink(rawURL, amazonTag string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, false
	}

	switch {
	case parsed.Host == "click.linksynergy.com":
		return unwrapParam(rawURL, parsed, "murl")

	case parsed.Host == "go.redirectingat.com":
		return unwrapParam(rawURL, parsed, "url")

	case strings.Contains(parsed.Host, "amazon."):
		if amazonTag == "" {
			return rawURL, false
		}
		query := parsed.Query()
		if query.Get("tag") == amazonTag {
			return rawURL, false
		}
		query.Set("tag", amazonTag)
		parsed.RawQuery = query.Encode()
		return parsed.String(), true

	default:
		return rawURL, false
	}
}

// unwrapParam extracts the destination URL a tracking wrapper carries in a
// query parameter, falling back to the wrapper URL when absent.
func unwrapParam(rawURL string, parsed *url.URL, param string) (string, bool) {
	dest := parsed.Query().Get(param)
	if dest == "" {
		return rawURL, false
	}
	decoded, err := url.QueryUnescape(dest)
	if err != nil {
		return rawURL, false
	}
	return decoded, true
}
