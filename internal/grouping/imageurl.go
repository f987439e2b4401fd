package grouping

import (
	"net/url"
	"regexp"
	"strings"
)

// Hosts that consistently serve broken or hotlink-protected images.
var imageHostBlocklist = map[string]struct{}{
	"bilder.kolonial.no": {},
	"api.vetduat.no":     {},
}

var numericPlaceholder = regexp.MustCompile(`^\d{8,}$`)

// IsValidImageURL reports whether s is worth keeping as a product
// image. Some stores put a bare numeric filename in the image field;
// those and blocklisted hosts are rejected. Scheme-less values are
// treated as relative to the page origin and pass through.
func IsValidImageURL(s string) bool {
	if s == "" {
		return false
	}
	if numericPlaceholder.MatchString(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if _, blocked := imageHostBlocklist[host]; blocked {
		return false
	}
	return true
}
