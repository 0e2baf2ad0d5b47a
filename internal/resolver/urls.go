package resolver

import (
	"net/url"
	"path"
	"strings"
)

const (
	previewHost   = "preview.redd.it"
	canonicalHost = "i.redd.it"
	dashPlaylist  = "DASHPlaylist.mpd"
)

// dashResolutions are probed highest first.
var dashResolutions = []string{"1080", "720", "480"}

// NormalizeImageURL points preview-host image links at the canonical host.
// Preview links carry signed query strings the canonical host does not need.
func NormalizeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Host, previewHost) {
		return raw
	}
	u.Host = canonicalHost
	u.RawQuery = ""
	return u.String()
}

// DashCandidates lists the progressive renditions of a DASH playlist URL,
// highest resolution first.
func DashCandidates(dashURL string) []string {
	if !strings.Contains(dashURL, dashPlaylist) {
		return nil
	}
	out := make([]string, 0, len(dashResolutions))
	for _, res := range dashResolutions {
		out = append(out, strings.Replace(dashURL, dashPlaylist, "DASH_"+res+".mp4", 1))
	}
	return out
}

// extension returns the lower-cased file extension of a URL path.
func extension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}
