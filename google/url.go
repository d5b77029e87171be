package google

import (
	"net/url"
	"strings"

	random "github.com/mazen160/go-random"
)

const searchEndpoint = "https://www.google.com/search"

// BuildSearchURL returns the results URL for query. Language is pinned to
// English so panel markup stays stable; region, when set, localizes ratings
// and watch providers. A few opaque tokens make the query look like one typed
// into the omnibox.
func BuildSearchURL(query, region string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("oq", query)
	v.Set("hl", "en")
	if region != "" {
		v.Set("gl", strings.ToUpper(region))
	}
	v.Set("sourceid", "chrome")
	v.Set("ie", "UTF-8")
	if tok, err := random.String(16); err == nil {
		v.Set("sca_esv", tok)
	}
	if tok, err := random.String(22); err == nil {
		v.Set("ei", tok)
	}
	return searchEndpoint + "?" + v.Encode()
}
