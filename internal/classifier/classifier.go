package classifier

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
)

// Membership answers whether a source post was already mirrored.
type Membership interface {
	Contains(id string) bool
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Classify decides how a source post is mirrored. Rules apply in order and
// the first match wins; the self-post flag is checked before any media flag
// because self-posts can carry stale media metadata.
func Classify(post *domain.Post, cutoff time.Time, seen Membership) domain.Shape {
	switch {
	case seen != nil && seen.Contains(post.ID):
		return domain.ShapeAlreadyMirrored
	case post.CreatedAt.Before(cutoff):
		return domain.ShapeOutOfWindow
	case post.IsSelf:
		return domain.ShapeSelfText
	case post.IsGallery:
		return domain.ShapeGallery
	case HasPlayableVideo(post):
		return domain.ShapeHostedVideo
	case IsImageURL(post.URL):
		return domain.ShapeDirectImage
	default:
		return domain.ShapeGenericLink
	}
}

// HasPlayableVideo reports whether the post carries a hosted video reference.
func HasPlayableVideo(post *domain.Post) bool {
	return post.Video != nil && (post.Video.FallbackURL != "" || post.Video.DashURL != "")
}

// IsImageURL reports whether the URL path ends with a known raster extension.
func IsImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	_, ok := imageExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
