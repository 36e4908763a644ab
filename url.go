package pagemeta

import (
	"net/url"
	"strings"
)

// NormalizeURL validates an absolute http or https URL and returns it in
// canonical form: lowercase scheme and host, no fragment, and "/" for an
// empty path. Returns EINVALID for anything else.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
