package domain

import "time"

// Self-text values the platform substitutes for deleted or removed bodies.
const (
	SelfTextDeleted = "[deleted]"
	SelfTextRemoved = "[removed]"
)

type GalleryItemKind string

const (
	GalleryImage         GalleryItemKind = "Image"
	GalleryAnimatedImage GalleryItemKind = "AnimatedImage"
	GalleryVideo         GalleryItemKind = "RedditVideo"
)

// GalleryItem is one entry of a gallery, in declared order.
type GalleryItem struct {
	MediaID string
	Kind    GalleryItemKind
	Valid   bool   // metadata status == "valid"
	Image   string // static source rendition
	GIF     string // animated raster rendition
	MP4     string // animated video-container rendition
	DashURL string // playlist of a hosted video item
}

// Video describes a platform-hosted video.
type Video struct {
	FallbackURL string
	DashURL     string
	HasAudio    bool
	IsGIF       bool
}

// Post is a read-only view of a post on either community.
type Post struct {
	ID        string
	Title     string
	CreatedAt time.Time
	// Author is empty when the account was deleted.
	Author    string
	SelfText  string
	URL       string
	Permalink string

	IsSelf    bool
	IsGallery bool
	IsVideo   bool
	Gallery   []GalleryItem
	Video     *Video

	RemovedByCategory  string
	BannedBy           string
	CategoryText       string
	CategoryTemplateID string
}

func (p *Post) HasAuthor() bool {
	return p.Author != ""
}

// PermalinkURL returns the absolute link to the post.
func (p *Post) PermalinkURL() string {
	if p.Permalink == "" {
		return "https://www.reddit.com/comments/" + p.ID
	}
	return "https://www.reddit.com" + p.Permalink
}

// Reply is a comment attached directly to a post.
type Reply struct {
	ID     string
	Author string
	Body   string
}

// Rule is a community rule as listed by moderators.
type Rule struct {
	Priority        int    `yaml:"priority"`
	ShortName       string `yaml:"short_name"`
	Description     string `yaml:"description"`
	Kind            string `yaml:"kind"`
	ViolationReason string `yaml:"violation_reason"`
}
