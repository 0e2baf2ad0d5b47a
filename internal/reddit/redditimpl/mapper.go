package redditimpl

import (
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/tidwall/gjson"
)

const deletedAuthor = "[deleted]"

// parsePost maps the "data" object of a t3 thing.
func parsePost(data gjson.Result) domain.Post {
	post := domain.Post{
		ID:                 data.Get("id").String(),
		Title:              data.Get("title").String(),
		CreatedAt:          unixTime(data.Get("created_utc")),
		Author:             author(data.Get("author")),
		SelfText:           data.Get("selftext").String(),
		URL:                data.Get("url").String(),
		Permalink:          data.Get("permalink").String(),
		IsSelf:             data.Get("is_self").Bool(),
		IsGallery:          data.Get("is_gallery").Bool(),
		IsVideo:            data.Get("is_video").Bool(),
		RemovedByCategory:  data.Get("removed_by_category").String(),
		BannedBy:           bannedBy(data.Get("banned_by")),
		CategoryText:       data.Get("link_flair_text").String(),
		CategoryTemplateID: data.Get("link_flair_template_id").String(),
	}

	if post.IsGallery {
		post.Gallery = parseGallery(data)
	}
	post.Video = parseVideo(data)

	return post
}

func unixTime(v gjson.Result) time.Time {
	if !v.Exists() {
		return time.Time{}
	}
	sec := v.Float()
	return time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9)).UTC()
}

// author returns "" for deleted accounts, which the platform reports either
// as null or as the "[deleted]" placeholder.
func author(v gjson.Result) string {
	if v.Type == gjson.Null || !v.Exists() {
		return ""
	}
	if name := v.String(); name != deletedAuthor {
		return name
	}
	return ""
}

// bannedBy is a moderator name, or true when the name is hidden from the caller.
func bannedBy(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.True:
		return "true"
	default:
		return ""
	}
}

func parseGallery(data gjson.Result) []domain.GalleryItem {
	meta := data.Get("media_metadata")

	var items []domain.GalleryItem
	data.Get("gallery_data.items").ForEach(func(_, entry gjson.Result) bool {
		id := entry.Get("media_id").String()
		m := meta.Get(gjson.Escape(id))

		items = append(items, domain.GalleryItem{
			MediaID: id,
			Kind:    domain.GalleryItemKind(m.Get("e").String()),
			Valid:   m.Get("status").String() == "valid",
			Image:   m.Get("s.u").String(),
			GIF:     m.Get("s.gif").String(),
			MP4:     m.Get("s.mp4").String(),
			DashURL: m.Get("dashUrl").String(),
		})
		return true
	})
	return items
}

// parseVideo reads the hosted video descriptor, falling back to a video
// embedded in media metadata when the post has no regular descriptor.
func parseVideo(data gjson.Result) *domain.Video {
	for _, path := range []string{"media.reddit_video", "secure_media.reddit_video"} {
		rv := data.Get(path)
		if !rv.Exists() {
			continue
		}
		return &domain.Video{
			FallbackURL: rv.Get("fallback_url").String(),
			DashURL:     rv.Get("dash_url").String(),
			HasAudio:    rv.Get("has_audio").Bool(),
			IsGIF:       rv.Get("is_gif").Bool(),
		}
	}

	if data.Get("is_gallery").Bool() {
		return nil
	}

	var video *domain.Video
	data.Get("media_metadata").ForEach(func(_, m gjson.Result) bool {
		if m.Get("e").String() != string(domain.GalleryVideo) {
			return true
		}
		video = &domain.Video{
			DashURL:  m.Get("dashUrl").String(),
			HasAudio: true,
			IsGIF:    m.Get("isGif").Bool(),
		}
		return false
	})
	return video
}

func parseReply(data gjson.Result) domain.Reply {
	return domain.Reply{
		ID:     data.Get("id").String(),
		Author: author(data.Get("author")),
		Body:   data.Get("body").String(),
	}
}

// listingPosts extracts every t3 child of a listing.
func listingPosts(listing gjson.Result) []domain.Post {
	var posts []domain.Post
	listing.Get("data.children").ForEach(func(_, child gjson.Result) bool {
		if child.Get("kind").String() == "t3" {
			posts = append(posts, parsePost(child.Get("data")))
		}
		return true
	})
	return posts
}
